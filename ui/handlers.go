package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"attritionlens/domain/core"
	"attritionlens/domain/employee"
	"attritionlens/internal/dashboard"
	apperrors "attritionlens/internal/errors"
	"attritionlens/internal/export"
	"attritionlens/internal/filter"
	"attritionlens/ui/middleware"
	"attritionlens/ui/services"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "attritionlens_session"

// respondError writes an AppError as JSON with the matching status.
func (s *Server) respondError(c *gin.Context, err error) {
	status := apperrors.StatusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": apperrors.GetCode(err), "message": err.Error()})
}

// ============================================================================
// JSON API
// ============================================================================

func (s *Server) handleDataset(c *gin.Context) {
	table, err := s.data.Table(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"source":    table.Source,
		"signature": table.Signature,
		"rows":      table.Len(),
		"columns":   table.Columns,
		"loaded_at": table.LoadedAt,
	})
}

func (s *Server) handleOptions(c *gin.Context) {
	opts, err := s.data.Options(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (s *Server) handleCharts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tabs": dashboard.Tabs(), "charts": dashboard.Catalog()})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	defaults, err := s.data.Defaults(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.sessions.Create(defaults))
}

func (s *Server) handleGetCriteria(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, sess.Criteria)
}

func (s *Server) handlePutCriteria(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	var criteria filter.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		s.respondError(c, apperrors.InvalidInput("invalid criteria: "+err.Error()))
		return
	}
	updated, err := s.sessions.Update(sess.ID, criteria)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated.Criteria)
}

func (s *Server) handleResetCriteria(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	defaults, err := s.data.Defaults(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	updated, err := s.sessions.Reset(sess.ID, defaults)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated.Criteria)
}

func (s *Server) handleDashboard(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	tab, err := dashboard.ParseTab(c.Query("tab"))
	if err != nil {
		s.respondError(c, apperrors.InvalidInput(err.Error()))
		return
	}

	payload, view, err := s.data.Dashboard(c.Request.Context(), sess.Criteria, tab)
	if err != nil {
		s.respondError(c, err)
		return
	}

	etag := services.ETag(view, sess.Criteria, "dashboard:"+string(tab))
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleRaw(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	view, err := s.data.View(c.Request.Context(), sess.Criteria)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if view.IsEmpty() {
		c.JSON(http.StatusOK, gin.H{"empty": true, "notice": apperrors.EmptyResultNotice})
		return
	}

	if format == export.FormatJSON {
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		c.JSON(http.StatusOK, export.Paginate(view, offset, limit))
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, view, format); err != nil {
		s.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.Filename()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// ============================================================================
// HTML DASHBOARD
// ============================================================================

// pageData is the model of index.html
type pageData struct {
	SessionID core.SessionID
	Tabs      []dashboard.Tab
	Active    dashboard.Tab
	Options   filter.Options
	Criteria  filter.Criteria
	Payload   *dashboard.Payload
	Panels    []services.Panel
	Raw       export.Page
	Dimension []employee.Field
}

// Selected reports whether v is ticked for f. A field without a selection is unrestricted.
func (p pageData) Selected(f employee.Field, v string) bool {
	vals, ok := p.Criteria.Sets[f]
	return !ok || contains(vals, v)
}

// AgeRange is the age range currently applied, or the full observed range.
func (p pageData) AgeRange() filter.Range {
	if p.Criteria.Age != nil {
		return *p.Criteria.Age
	}
	return p.Options.Age
}

// IncomeRange is the income range currently applied, or the full observed range.
func (p pageData) IncomeRange() filter.Range {
	if p.Criteria.MonthlyIncome != nil {
		return *p.Criteria.MonthlyIncome
	}
	return p.Options.MonthlyIncome
}

// pageSession returns the cookie session, creating one with default criteria
// when the cookie is missing or stale.
func (s *Server) pageSession(c *gin.Context) (core.SessionID, filter.Criteria, error) {
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if id, err := core.ParseSessionID(raw); err == nil {
			if sess, err := s.sessions.Get(id); err == nil {
				return sess.ID, sess.Criteria, nil
			}
		}
	}
	defaults, err := s.data.Defaults(c.Request.Context())
	if err != nil {
		return "", filter.Criteria{}, err
	}
	sess := s.sessions.Create(defaults)
	c.SetCookie(sessionCookie, sess.ID.String(), 0, "/", "", false, true)
	return sess.ID, sess.Criteria, nil
}

func (s *Server) handleIndex(c *gin.Context) {
	tab, err := dashboard.ParseTab(c.Query("tab"))
	if err != nil {
		tab = dashboard.TabOverview
	}

	id, criteria, err := s.pageSession(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	opts, err := s.data.Options(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	payload, view, err := s.data.Dashboard(c.Request.Context(), criteria, tab)
	if err != nil {
		s.respondError(c, err)
		return
	}

	data := pageData{
		SessionID: id,
		Tabs:      dashboard.Tabs(),
		Active:    tab,
		Options:   opts,
		Criteria:  criteria,
		Payload:   payload,
		Panels:    services.Panels(payload),
		Dimension: filter.Dimensions,
	}
	if tab == dashboard.TabRawData && !view.IsEmpty() {
		data.Raw = export.Paginate(view, 0, 200)
	}
	s.renderTemplate(c, "index.html", data)
}

// handleFilterForm replaces the cookie session's criteria with the sidebar
// selections. A dimension with nothing ticked selects nothing.
func (s *Server) handleFilterForm(c *gin.Context) {
	id, _, err := s.pageSession(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	criteria := filter.Criteria{}
	for _, f := range filter.Dimensions {
		criteria.Select(f, c.PostFormArray(string(f))...)
	}
	if criteria.Age, err = formRange(c, "age_min", "age_max"); err != nil {
		s.respondError(c, err)
		return
	}
	if criteria.MonthlyIncome, err = formRange(c, "income_min", "income_max"); err != nil {
		s.respondError(c, err)
		return
	}

	if _, err := s.sessions.Update(id, criteria); err != nil {
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, redirectTab(c))
}

func (s *Server) handleFilterReset(c *gin.Context) {
	id, _, err := s.pageSession(c)
	if err != nil {
		s.respondError(c, err)
		return
	}
	defaults, err := s.data.Defaults(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if _, err := s.sessions.Reset(id, defaults); err != nil {
		s.respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, redirectTab(c))
}

// redirectTab sends the browser back to the posted tab, falling back to overview
func redirectTab(c *gin.Context) string {
	tab, err := dashboard.ParseTab(c.PostForm("tab"))
	if err != nil {
		tab = dashboard.TabOverview
	}
	return "/?tab=" + string(tab)
}

// formRange reads an inclusive range from two form fields; both absent means unrestricted.
func formRange(c *gin.Context, minKey, maxKey string) (*filter.Range, error) {
	minRaw, maxRaw := c.PostForm(minKey), c.PostForm(maxKey)
	if minRaw == "" && maxRaw == "" {
		return nil, nil
	}
	min, err := strconv.ParseFloat(minRaw, 64)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s must be a number", minKey))
	}
	max, err := strconv.ParseFloat(maxRaw, 64)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("%s must be a number", maxKey))
	}
	return &filter.Range{Min: min, Max: max}, nil
}
