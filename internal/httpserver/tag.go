package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studyscope/studyscope/internal/service"
)

type TagHTTP struct {
	Svc *service.TagService
}

func (h *TagHTTP) GetTags(c echo.Context) error {
	tags, err := h.Svc.GetTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tags)
}

func (h *TagHTTP) AddTag(c echo.Context) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return errInvalidBody
	}

	tag, err := h.Svc.AddTag(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tag)
}

func (h *TagHTTP) UpdateTag(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" {
		return errInvalidBody
	}

	tag, err := h.Svc.UpdateTag(c.Request().Context(), uid, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tag)
}

func (h *TagHTTP) DeleteTag(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteTag(c.Request().Context(), uid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TagHTTP) AddTagsToBook(c echo.Context) error {
	uid, err := uidParam(c, "uid")
	if err != nil {
		return err
	}

	var req struct {
		Tags []struct {
			Name string `json:"name"`
		} `json:"tags"`
	}
	if err := c.Bind(&req); err != nil || len(req.Tags) == 0 {
		return errInvalidBody
	}

	names := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}

	book, err := h.Svc.AddTagsToBook(c.Request().Context(), uid, names)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}
