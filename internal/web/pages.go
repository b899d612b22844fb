package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-pizza-console/internal/console"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// page serves one manager: list and form on GET, writes on POST.
// Every write answers with a redirect back to the page.
type page[E, F any] struct {
	path     string
	template string
	title    string
	manager  *console.Manager[E, F]
	// load defaults to manager.Load
	load func(ctx context.Context) error
	// bind defaults to gin form binding
	bind func(ctx *gin.Context) (F, error)
	// data adds page specific template values
	data func(gin.H)
}

func register[E, F any](router gin.IRoutes, s *Server, p page[E, F]) {
	if p.load == nil {
		p.load = p.manager.Load
	}
	if p.bind == nil {
		p.bind = bindForm[F]
	}
	router.GET(p.path, func(ctx *gin.Context) { p.render(ctx, s, http.StatusOK, "") })
	router.POST(p.path, func(ctx *gin.Context) { p.submit(ctx, s) })
	router.POST(p.path+"/cancel", p.cancel)
	router.POST(p.path+"/:id/edit", func(ctx *gin.Context) { p.edit(ctx, s) })
	router.GET(p.path+"/:id/delete", func(ctx *gin.Context) { p.confirmDelete(ctx, s) })
	router.POST(p.path+"/:id/delete", func(ctx *gin.Context) { p.delete(ctx, s) })
}

// render reloads the list and shows the page. A pending alert is shown once.
// alert, when set, replaces the manager's alert.
func (p page[E, F]) render(ctx *gin.Context, s *Server, status int, alert string) {
	_ = p.load(ctx.Request.Context())

	view := p.manager.View()
	p.manager.DismissAlert()
	if alert == "" {
		alert = view.Alert
	}

	data := s.base(p.title, p.path)
	data["Noun"] = p.manager.Noun()
	data["View"] = view
	data["Editing"] = view.Mode == console.ModeEdit
	data["Alert"] = alert
	if p.data != nil {
		p.data(data)
	}
	ctx.HTML(status, p.template, data)
}

func (p page[E, F]) submit(ctx *gin.Context, s *Server) {
	form, err := p.bind(ctx)
	if err != nil {
		log.WithError(err).WithField("page", p.path).Debug("Rejected form")
		p.render(ctx, s, http.StatusBadRequest, "Please fill in every required field with a valid value.")
		return
	}
	if err := p.manager.Submit(ctx.Request.Context(), form); errors.Is(err, console.ErrSubmitInFlight) {
		p.render(ctx, s, http.StatusConflict, "A save is already in progress.")
		return
	}
	ctx.Redirect(http.StatusSeeOther, p.path)
}

func (p page[E, F]) cancel(ctx *gin.Context) {
	p.manager.Cancel()
	ctx.Redirect(http.StatusSeeOther, p.path)
}

func (p page[E, F]) edit(ctx *gin.Context, s *Server) {
	id, ok := pathID(ctx, s)
	if !ok {
		return
	}
	err := p.manager.Edit(id)
	if errors.Is(err, console.ErrNotListed) {
		// the list may predate the entity, reload once
		if loadErr := p.load(ctx.Request.Context()); loadErr == nil {
			err = p.manager.Edit(id)
		}
	}
	if err != nil {
		notFound(ctx, s)
		return
	}
	ctx.Redirect(http.StatusSeeOther, p.path)
}

func (p page[E, F]) confirmDelete(ctx *gin.Context, s *Server) {
	id, ok := pathID(ctx, s)
	if !ok {
		return
	}
	var prompt string
	// declining only captures the question
	_ = p.manager.Delete(ctx.Request.Context(), id, func(question string) bool {
		prompt = question
		return false
	})

	data := s.base(p.title, p.path)
	data["Prompt"] = prompt
	data["Action"] = fmt.Sprintf("%s/%d/delete", p.path, id)
	ctx.HTML(http.StatusOK, "confirm.html", data)
}

func (p page[E, F]) delete(ctx *gin.Context, s *Server) {
	id, ok := pathID(ctx, s)
	if !ok {
		return
	}
	confirmed := ctx.PostForm("confirm") == "yes"
	_ = p.manager.Delete(ctx.Request.Context(), id, func(string) bool { return confirmed })
	ctx.Redirect(http.StatusSeeOther, p.path)
}

func bindForm[F any](ctx *gin.Context) (F, error) {
	var form F
	err := ctx.ShouldBind(&form)
	return form, err
}

// bindPizzaForm binds the pizza fields and stages the optional "image" file
func bindPizzaForm(ctx *gin.Context) (console.PizzaForm, error) {
	form, err := bindForm[console.PizzaForm](ctx)
	if err != nil {
		return form, err
	}
	header, err := ctx.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return form, nil
	}
	if err != nil {
		return form, fmt.Errorf("reading image field: %w", err)
	}
	file, err := header.Open()
	if err != nil {
		return form, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		return form, fmt.Errorf("reading image: %w", err)
	}
	if len(content) > 0 {
		form.Image = &console.StagedImage{Filename: header.Filename, Content: content}
	}
	return form, nil
}

func pathID(ctx *gin.Context, s *Server) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		notFound(ctx, s)
		return 0, false
	}
	return id, true
}

func notFound(ctx *gin.Context, s *Server) {
	ctx.HTML(http.StatusNotFound, "not_found.html", s.base("Page not found", ctx.Request.URL.Path))
}
