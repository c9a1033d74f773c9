package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"diarias_backend/internals/features/companies/dto"
	"diarias_backend/internals/features/companies/model"
	helper "diarias_backend/internals/helpers"
)

type CompanyController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCompanyController(db *gorm.DB) *CompanyController {
	return &CompanyController{DB: db, Validate: validator.New()}
}

// POST /api/a/companies
func (ctl *CompanyController) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	company := model.CompanyModel{
		CompanyName:    req.CompanyName,
		CompanyContact: req.CompanyContact,
		CompanyPhone:   req.CompanyPhone,
		CompanyAddress: req.CompanyAddress,
		CompanyActive:  true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&company).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create company")
	}
	return helper.JsonCreated(c, "Company created", company)
}

// GET /api/a/companies
func (ctl *CompanyController) List(c *fiber.Ctx) error {
	var companies []model.CompanyModel
	q := ctl.DB.WithContext(c.Context()).Order("company_name ASC")
	if c.QueryBool("active_only", false) {
		q = q.Where("company_active = ?", true)
	}
	if err := q.Find(&companies).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list companies")
	}
	return helper.JsonList(c, "", companies, nil)
}

// GET /api/a/companies/:id
func (ctl *CompanyController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid company id")
	}
	var company model.CompanyModel
	err = ctl.DB.WithContext(c.Context()).Where("company_id = ?", id).Take(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusNotFound, "Company not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load company")
	}
	return helper.JsonOK(c, "", company)
}

// PATCH /api/a/companies/:id
func (ctl *CompanyController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid company id")
	}
	var req dto.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	values := map[string]any{}
	if req.CompanyName != nil {
		values["company_name"] = *req.CompanyName
	}
	if req.CompanyContact != nil {
		values["company_contact"] = *req.CompanyContact
	}
	if req.CompanyPhone != nil {
		values["company_phone"] = *req.CompanyPhone
	}
	if req.CompanyAddress != nil {
		values["company_address"] = *req.CompanyAddress
	}
	if req.CompanyActive != nil {
		values["company_active"] = *req.CompanyActive
	}
	if len(values) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.WithContext(c.Context()).Model(&model.CompanyModel{}).
		Where("company_id = ?", id).
		Updates(values)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update company")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Company not found")
	}

	var company model.CompanyModel
	if err := ctl.DB.WithContext(c.Context()).Where("company_id = ?", id).Take(&company).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load company")
	}
	return helper.JsonUpdated(c, "Company updated", company)
}
