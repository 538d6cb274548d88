package uploadController

import (
	"regexp"

	"techstorm/config"
	"techstorm/middleware"
	"techstorm/utils"

	"github.com/gofiber/fiber/v2"
)

const defaultFolder = "uploads"

var folderPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)

func Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No files received.", nil)
	}

	if max := config.AppConfig.UploadMaxBytes; max > 0 && fileHeader.Size > int64(max) {
		return middleware.JsonResponse(c, fiber.StatusRequestEntityTooLarge, false, "File is too large!", nil)
	}

	folder := c.FormValue("folder", defaultFolder)
	if !folderPattern.MatchString(folder) {
		folder = defaultFolder
	}

	url, err := utils.UploadFile(c.UserContext(), folder, fileHeader)
	if err != nil {
		utils.ReportError(err, "uploading file")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "File uploaded successfully!", fiber.Map{
		"success": true,
		"url":     url,
	})
}
