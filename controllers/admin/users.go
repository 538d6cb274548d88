package adminController

import (
	"errors"
	"log"
	"time"

	"techstorm/config"
	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"
	"techstorm/validators"
	adminValidator "techstorm/validators/admin"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultPassword = "password123"

type userRow struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            string    `json:"role"`
	Status          string    `json:"status"`
	Image           string    `json:"image"`
	CreatedAt       time.Time `json:"created_at"`
	CoursesTeaching int64     `json:"courses_teaching"`
	Enrollments     int64     `json:"enrollments"`
}

func ListUsers(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Order("created_at desc")
	if reqData, ok := c.Locals("validatedUserQuery").(*adminValidator.UserListQuery); ok && reqData.Role != "" {
		query = query.Where("role = ?", reqData.Role)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	ids := make([]uint, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	teaching := database.CountGrouped(db, "courses", "instructor_id", ids)
	enrollments := database.CountGrouped(db, "enrollments", "user_id", ids)

	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{
			ID:              u.ID,
			Name:            u.Name,
			Email:           u.Email,
			Role:            u.Role,
			Status:          u.Status,
			Image:           u.Image,
			CreatedAt:       u.CreatedAt,
			CoursesTeaching: teaching[u.ID],
			Enrollments:     enrollments[u.ID],
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users list.", rows)
}

func hashPassword(password string) (string, error) {
	if password == "" {
		password = defaultPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	return string(hashed), err
}

func CreateUser(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAdminUser").(*adminValidator.CreateUserRequest)
	db := database.Database.Db

	var count int64
	db.Model(&models.User{}).Where("email = ?", reqData.Email).Count(&count)
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already exists", nil)
	}

	hashed, err := hashPassword(reqData.Password)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	user := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Role:     reqData.Role,
		Status:   models.UserActive,
		Password: hashed,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already exists", nil)
		}
		log.Printf("Error creating user: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully!", user)
}

func UpdateUser(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAdminUserUpdate").(*adminValidator.UpdateUserRequest)
	db := database.Database.Db

	var user models.User
	if err := db.First(&user, c.Locals("id").(uint)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.Email != nil && *reqData.Email != user.Email {
		var count int64
		db.Model(&models.User{}).Where("email = ? AND id <> ?", *reqData.Email, user.ID).Count(&count)
		if count > 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already exists", nil)
		}
	}

	var columns []string
	set := func(dst *string, src *string, column string) {
		if src != nil {
			*dst = *src
			columns = append(columns, column)
		}
	}
	set(&user.Name, reqData.Name, "Name")
	set(&user.Email, reqData.Email, "Email")
	set(&user.Role, reqData.Role, "Role")
	set(&user.Status, reqData.Status, "Status")
	set(&user.Image, reqData.Image, "Image")
	set(&user.Title, reqData.Title, "Title")
	set(&user.Bio, reqData.Bio, "Bio")

	if len(columns) > 0 {
		if err := db.Model(&user).Select(columns).Updates(&user).Error; err != nil {
			log.Printf("Error updating user: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

func DeleteUser(c *fiber.Ctx) error {
	admin, _ := middleware.CurrentUser(c)
	id := c.Locals("id").(uint)

	if id == admin.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	result := database.Database.Db.Delete(&models.User{}, id)
	if result.Error != nil {
		log.Printf("Error deleting user: %v", result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

type skippedRow struct {
	Line   int    `json:"line"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// ImportUsers creates accounts from an xlsx sheet with the columns Name | Email | Role
func ImportUsers(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No files received.", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read file!", nil)
	}
	defer file.Close()

	rows, err := utils.ParseUserImport(file)
	if err != nil {
		log.Printf("[IMPORT] %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid spreadsheet!", nil)
	}

	hashed, err := hashPassword(defaultPassword)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	db := database.Database.Db
	created := 0
	skipped := make([]skippedRow, 0)
	seen := make(map[string]bool)

	for _, row := range rows {
		if row.Role == "" {
			row.Role = models.RoleMentee
		}
		candidate := adminValidator.CreateUserRequest{Name: row.Name, Email: row.Email, Role: row.Role}
		if errs := validators.Check(&candidate); len(errs) > 0 {
			for _, msg := range errs {
				skipped = append(skipped, skippedRow{Line: row.Line, Email: row.Email, Reason: msg})
				break
			}
			continue
		}

		if seen[row.Email] {
			skipped = append(skipped, skippedRow{Line: row.Line, Email: row.Email, Reason: "Duplicate row"})
			continue
		}
		seen[row.Email] = true

		var count int64
		db.Model(&models.User{}).Where("email = ?", row.Email).Count(&count)
		if count > 0 {
			skipped = append(skipped, skippedRow{Line: row.Line, Email: row.Email, Reason: "Email already exists"})
			continue
		}

		user := models.User{Name: row.Name, Email: row.Email, Role: row.Role, Status: models.UserActive, Password: hashed}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("[IMPORT] line %d: %v", row.Line, err)
			skipped = append(skipped, skippedRow{Line: row.Line, Email: row.Email, Reason: "Failed to create user"})
			continue
		}
		created++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users imported.", fiber.Map{
		"created": created,
		"skipped": skipped,
	})
}
