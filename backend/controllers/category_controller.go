package controllers

import (
	"github.com/attthulll/Learnsphere---Backend/backend/services"
	"github.com/attthulll/Learnsphere---Backend/backend/utils"
	"github.com/gofiber/fiber/v2"
)

type CategoryController struct {
	Categories *services.CategoryService
}

func NewCategoryController(svc *services.Services) *CategoryController {
	return &CategoryController{Categories: svc.Categories}
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (cc *CategoryController) GetCategories(c *fiber.Ctx) error {
	categories, err := cc.Categories.List(c.UserContext())
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, categories)
}

func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	category, err := cc.Categories.Create(c.UserContext(), req.Name)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Created(c, category)
}

func (cc *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	id, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	var req CategoryRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}
	category, err := cc.Categories.Rename(c.UserContext(), id, req.Name)
	if err != nil {
		return utils.FromError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, category)
}

func (cc *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	id, ok, err := paramID(c, "id")
	if !ok {
		return err
	}
	if err := cc.Categories.Delete(c.UserContext(), id); err != nil {
		return utils.FromError(c, err)
	}
	return utils.SuccessMessage(c, fiber.StatusOK, "Category deleted", nil)
}
