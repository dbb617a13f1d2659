package http

import (
	"io"
	"net/http"

	"contract-approval/internal/domain/document"
	ucDoc "contract-approval/internal/usecase/document"

	"github.com/labstack/echo/v4"
)

type DocumentHandler struct{ uc *ucDoc.Usecase }

func NewDocumentHandler(uc *ucDoc.Usecase) *DocumentHandler { return &DocumentHandler{uc: uc} }

// Upload takes multipart field "file" and answers with its content id.
func (h *DocumentHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, document.ErrEmpty, documentStatus)
	}
	limit := h.uc.MaxBytes()
	if limit > 0 && fh.Size > limit {
		return fail(c, document.ErrTooLarge, documentStatus)
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	dto, err := h.uc.Upload(c.Request().Context(), ucDoc.UploadInput{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return fail(c, err, documentStatus)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DocumentHandler) Get(c echo.Context) error {
	doc, err := h.uc.Get(c.Request().Context(), c.Param("cid"))
	if err != nil {
		return fail(c, err, documentStatus)
	}
	return c.Blob(http.StatusOK, doc.ContentType, doc.Content)
}
