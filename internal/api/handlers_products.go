package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/stashlog/internal/models"
	"github.com/terraincognita07/stashlog/internal/services"
)

func (handler *Handler) ListProducts(c *fiber.Ctx) error {
	filter := services.ProductFilter{
		Category: models.Category(strings.TrimSpace(c.Query("category"))),
		Query:    c.Query("q"),
		Tag:      c.Query("tag"),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		return apiError(c, fiber.StatusBadRequest, services.ErrInvalidCategory.Error())
	}

	products, err := handler.products.List(c.UserContext(), filter)
	if err != nil {
		return handler.serviceError(c, "list products", err)
	}
	return c.JSON(products)
}

func (handler *Handler) ListProductTags(c *fiber.Ctx) error {
	tags, err := handler.products.DistinctTags(c.UserContext())
	if err != nil {
		return handler.serviceError(c, "list tags", err)
	}
	return c.JSON(tags)
}

func (handler *Handler) GetProduct(c *fiber.Ctx) error {
	detail, err := handler.products.Detail(c.UserContext(), c.Params("id"))
	if err != nil {
		return handler.serviceError(c, "load product", err)
	}
	return c.JSON(detail)
}

func (handler *Handler) CreateProduct(c *fiber.Ctx) error {
	var draft models.Product
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	product, err := handler.products.Create(c.UserContext(), draft, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, "save product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (handler *Handler) UpdateProduct(c *fiber.Ctx) error {
	var draft models.Product
	if err := c.BodyParser(&draft); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	product, err := handler.products.Update(c.UserContext(), c.Params("id"), draft, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, "save product", err)
	}
	return c.JSON(product)
}

func (handler *Handler) DeleteProduct(c *fiber.Ctx) error {
	if err := handler.products.Delete(c.UserContext(), c.Params("id")); err != nil {
		return handler.serviceError(c, "delete product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
