package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

type QRCodeController struct {
	pictures *PictureController
	baseURL  string
}

func NewQRCodeController(pictures *PictureController, baseURL string) *QRCodeController {
	return &QRCodeController{
		pictures: pictures,
		baseURL:  baseURL,
	}
}

// GenerateQRCode handles GET /api/v1/pictures/:id/qrcode - returns a QR
// code encoding the picture's file URL, for showing the picture on
// another device.
func (qc *QRCodeController) GenerateQRCode(c *gin.Context) {
	pic, ok := qc.pictures.findPicture(c)
	if !ok {
		return
	}

	shareURL := fmt.Sprintf("%s/api/v1/pictures/%s/file", qc.baseURL, pic.ID)

	// 256x256 pixels, medium error recovery
	qrCode, err := qrcode.New(shareURL, qrcode.Medium)
	if err != nil {
		internalError(c, "generate qr code", err)
		return
	}

	pngData, err := qrCode.PNG(256)
	if err != nil {
		internalError(c, "encode qr code", err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=qrcode.png")
	c.Data(http.StatusOK, "image/png", pngData)
}
