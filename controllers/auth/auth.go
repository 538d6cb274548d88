package authController

import (
	"errors"
	"log"
	"time"

	"techstorm/config"
	"techstorm/database"
	"techstorm/middleware"
	"techstorm/models"
	"techstorm/utils"
	authValidator "techstorm/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxFailedLogins = 5
	lockoutWindow   = 15 * time.Minute
	resetCodeTTL    = 15 * time.Minute
	maxResetTries   = 5
)

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	var count int64
	db.Model(&models.User{}).Where("email = ?", reqData.Email).Count(&count)
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already in use", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("[AUTH] Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     models.RoleMentee,
		Status:   models.UserActive,
	}

	if err := db.Create(&newUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email already in use", nil)
		}
		log.Printf("[AUTH] Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials", nil)
	}

	now := time.Now()

	if user.IsLocked(now) {
		return middleware.JsonResponse(c, fiber.StatusLocked, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	// A stale failure streak starts over
	if user.LastFailedLogin != nil && now.Sub(*user.LastFailedLogin) > lockoutWindow {
		user.FailedLoginAttempts = 0
		user.LastFailedLogin = nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++
		user.LastFailedLogin = &now

		if user.FailedLoginAttempts >= maxFailedLogins {
			unblockTime := now.Add(lockoutWindow)
			user.BlockedUntil = &unblockTime
			user.FailedLoginAttempts = 0
			log.Printf("[AUTH] User %d locked until %s", user.ID, unblockTime.Format(time.RFC3339))
		}

		if err := db.Model(&user).Select("FailedLoginAttempts", "LastFailedLogin", "BlockedUntil").Updates(&user).Error; err != nil {
			log.Printf("[AUTH] Error saving failed login: %v", err)
		}

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials", nil)
	}

	if user.Status == models.UserSuspended {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your account has been suspended.", nil)
	}

	user.LastLogin = &now
	user.FailedLoginAttempts = 0
	user.LastFailedLogin = nil
	user.BlockedUntil = nil
	if err := db.Model(&user).Select("LastLogin", "FailedLoginAttempts", "LastFailedLogin", "BlockedUntil").Updates(&user).Error; err != nil {
		log.Printf("[AUTH] Error saving last login time: %v", err)
	}

	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		IPAddress: c.IP(),
		Device:    c.Get("User-Agent"),
		Timestamp: now,
	}
	if err := db.Create(&loginTracking).Error; err != nil {
		log.Printf("[AUTH] Error saving login tracking details: %v", err)
	}

	token, err := middleware.GenerateJWT(user)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"access_token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
			"image": user.Image,
		},
	})
}

func Me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User details.", user)
}

func UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedAuthProfile").(*authValidator.UpdateProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user.Name = reqData.Name
	columns := []string{"Name"}
	if reqData.Image != nil && *reqData.Image != "" {
		user.Image = *reqData.Image
		columns = append(columns, "Image")
	}

	if err := database.Database.Db.Model(&user).Select(columns).Updates(&user).Error; err != nil {
		log.Printf("[AUTH] Error updating profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}

func ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedChangePassword").(*authValidator.ChangePasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Current)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Incorrect current password", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.New), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := database.Database.Db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Printf("[AUTH] Error updating password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully!", nil)
}

func Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("jti").(string)
	if jti == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Token cannot be revoked!", nil)
	}

	expiresAt, ok := c.Locals("tokenExp").(time.Time)
	if !ok {
		expiresAt = time.Now().Add(middleware.TokenTTL)
	}

	if err := utils.Revocations().Revoke(c.UserContext(), jti, expiresAt); err != nil {
		utils.ReportError(err, "revoking token")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to logout!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully.", nil)
}

func ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*authValidator.ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Same answer whether or not the account exists
	const answer = "If the email is registered, a reset code has been sent."

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ?", reqData.Email).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, answer, nil)
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		utils.ReportError(err, "generating reset code")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// Only the latest code stays valid
		if err := tx.Where("user_id = ? AND purpose = ? AND is_used = ?", user.ID, models.OTPPasswordReset, false).
			Delete(&models.OTP{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.OTP{
			UserID:    user.ID,
			Email:     user.Email,
			CodeHash:  utils.HashToken(code),
			Purpose:   models.OTPPasswordReset,
			ExpiresAt: time.Now().Add(resetCodeTTL),
		}).Error
	})
	if err != nil {
		log.Printf("[AUTH] Error creating reset code: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	utils.SendPasswordResetEmail(user.Email, user.Name, code)

	return middleware.JsonResponse(c, fiber.StatusOK, true, answer, nil)
}

func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*authValidator.ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var otpRecord models.OTP
	err := db.Where("email = ? AND purpose = ? AND is_used = ?", reqData.Email, models.OTPPasswordReset, false).
		Order("created_at desc").
		First(&otpRecord).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired code!", nil)
	}

	if otpRecord.ExpiresAt.Before(time.Now()) || otpRecord.Attempts >= maxResetTries {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired code!", nil)
	}

	if otpRecord.CodeHash != utils.HashToken(reqData.Code) {
		db.Model(&otpRecord).UpdateColumn("attempts", gorm.Expr("attempts + 1"))
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired code!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", otpRecord.UserID).Updates(map[string]interface{}{
			"password":              string(hashedPassword),
			"failed_login_attempts": 0,
			"blocked_until":         nil,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&otpRecord).Update("is_used", true).Error
	})
	if err != nil {
		log.Printf("[AUTH] Error resetting password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password reset successfully. Please login.", nil)
}

func LoginHistoryList(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedLoginHistory").(*authValidator.LoginHistoryQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page, limit := reqData.Page, reqData.Limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var loginTracking []models.LoginTracking
	var total int64

	if err := db.Where("user_id = ?", userId).
		Order("timestamp desc").
		Offset(offset).
		Limit(limit).
		Find(&loginTracking).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	db.Model(&models.LoginTracking{}).Where("user_id = ?", userId).Count(&total)

	response := map[string]interface{}{
		"login_history": loginTracking,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login History List.", response)
}
