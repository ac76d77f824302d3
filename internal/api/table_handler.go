package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sheetpivot/app"
	"sheetpivot/domain/dataset"
	"sheetpivot/internal"
	"sheetpivot/internal/errors"
	"sheetpivot/internal/profiling"
	"sheetpivot/internal/render"

	"github.com/gin-gonic/gin"
)

// TableHandler serves the table snapshot API
type TableHandler struct {
	service     *app.TableService
	maxUploadMB int
	dataDir     string
	log         *internal.Logger
}

// NewTableHandler creates a new table handler. JSON requests may only name files
// under dataDir; an empty dataDir accepts uploads only.
func NewTableHandler(service *app.TableService, maxUploadMB int, dataDir string) *TableHandler {
	return &TableHandler{
		service:     service,
		maxUploadMB: maxUploadMB,
		dataDir:     dataDir,
		log:         internal.DefaultLogger.Named("api"),
	}
}

// CreateTableRequest asks for one sheet, the listed Sheets, or every sheet of a
// file when AllSheets is set. Path is relative to the data directory.
type CreateTableRequest struct {
	app.PivotRequest
	Sheets    []string `json:"sheets,omitempty"`
	AllSheets bool     `json:"all_sheets,omitempty"`
}

// TableResponse is a snapshot with its columns rendered as decoded values
type TableResponse struct {
	*dataset.TableSnapshot
	Columns map[string][]any `json:"columns,omitempty"`
}

// DescribeResponse carries the column profiles of one table
type DescribeResponse struct {
	ID      string                    `json:"id"`
	Columns []profiling.ColumnProfile `json:"columns"`
}

// RegisterRoutes mounts the handlers under rg
func (h *TableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tables := rg.Group("/tables")
	tables.POST("", h.CreateTable)
	tables.GET("", h.ListTables)
	tables.GET("/:id", h.GetTable)
	tables.GET("/:id/filter", h.FilterTable)
	tables.GET("/:id/describe", h.DescribeTable)
	tables.GET("/:id/html", h.TableHTML)
	tables.DELETE("/:id", h.DeleteTable)
}

// CreateTable pivots an uploaded file (multipart field "file") or a file under
// the data directory named in a JSON body
func (h *TableHandler) CreateTable(c *gin.Context) {
	var (
		req CreateTableRequest
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var cleanup func()
		req, cleanup, err = h.receiveUpload(c)
		if err != nil {
			h.respondError(c, err)
			return
		}
		defer cleanup()
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.respondError(c, errors.InvalidInput("invalid request body: "+err.Error()))
			return
		}
		if req.Path, err = h.resolvePath(req.Path); err != nil {
			h.respondError(c, err)
			return
		}
	}

	if req.AllSheets || len(req.Sheets) > 0 {
		snapshots, err := h.service.PivotSheets(c.Request.Context(), req.PivotRequest, req.Sheets)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"tables": snapshots})
		return
	}

	snapshot, err := h.service.PivotFile(c.Request.Context(), req.PivotRequest)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tableResponse(snapshot))
}

// resolvePath maps a request path onto the data directory. Absolute paths,
// paths with ".." and symlinks leading outside the directory are rejected.
func (h *TableHandler) resolvePath(p string) (string, error) {
	if h.dataDir == "" {
		return "", errors.InvalidInput("server-side paths are disabled, upload the file instead")
	}
	if strings.TrimSpace(p) == "" {
		return "", errors.InvalidInput("path is required")
	}
	if !filepath.IsLocal(p) {
		return "", errors.InvalidInput("path must be relative to the data directory")
	}

	root, err := filepath.EvalSymlinks(h.dataDir)
	if err != nil {
		return "", errors.WithCode(errors.CodeInternalError, fmt.Errorf("data directory: %w", err))
	}
	full := filepath.Join(root, p)
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		// a missing file is reported by the reader
		return full, nil
	}
	if rel, err := filepath.Rel(root, resolved); err != nil || !filepath.IsLocal(rel) {
		return "", errors.InvalidInput("path must stay inside the data directory")
	}
	return resolved, nil
}

// ListTables returns stored snapshots newest first
func (h *TableHandler) ListTables(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	snapshots, err := h.service.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": snapshots, "limit": limit, "offset": offset})
}

// GetTable returns one snapshot with its columns
func (h *TableHandler) GetTable(c *gin.Context) {
	snapshot, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tableResponse(snapshot))
}

// FilterTable derives a snapshot holding the rows whose column equals keyword,
// ignoring case
func (h *TableHandler) FilterTable(c *gin.Context) {
	column, ok := c.GetQuery("column")
	if !ok || column == "" {
		h.respondError(c, errors.InvalidInput("column query parameter is required"))
		return
	}
	snapshot, err := h.service.Filter(c.Request.Context(), c.Param("id"), column, c.Query("keyword"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tableResponse(snapshot))
}

// DescribeTable returns per-column profiles
func (h *TableHandler) DescribeTable(c *gin.Context) {
	id := c.Param("id")
	profiles, err := h.service.Describe(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, DescribeResponse{ID: id, Columns: profiles})
}

// TableHTML renders a snapshot as an HTML page
func (h *TableHandler) TableHTML(c *gin.Context) {
	snapshot, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	title := fmt.Sprintf("%s / %s", snapshot.Source, snapshot.Sheet)
	c.Data(http.StatusOK, "text/html; charset=utf-8", render.HTML(title, snapshot.Table))
}

// DeleteTable removes a snapshot
func (h *TableHandler) DeleteTable(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// receiveUpload copies the uploaded file into a temporary directory under its
// own base name, since the reader is chosen by extension and CSV sheets are
// named after the file
func (h *TableHandler) receiveUpload(c *gin.Context) (CreateTableRequest, func(), error) {
	noop := func() {}
	limit := int64(h.maxUploadMB) << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		return CreateTableRequest{}, noop, errors.InvalidInput("no file uploaded: " + err.Error())
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if name == "." || !filepath.IsLocal(name) {
		return CreateTableRequest{}, noop, errors.InvalidInput("invalid upload file name")
	}

	dir, err := os.MkdirTemp("", "sheetpivot-*")
	if err != nil {
		return CreateTableRequest{}, noop, errors.Wrap(err, "failed to store upload")
	}
	cleanup := func() { os.RemoveAll(dir) }
	fail := func(err error) (CreateTableRequest, func(), error) {
		cleanup()
		return CreateTableRequest{}, noop, err
	}

	tmp, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fail(errors.Wrap(err, "failed to store upload"))
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return fail(errors.InvalidInput("failed to read upload: " + err.Error()))
	}
	if err := tmp.Close(); err != nil {
		return fail(errors.Wrap(err, "failed to store upload"))
	}

	headerRow := 0
	if v := c.PostForm("header_row"); v != "" {
		if headerRow, err = strconv.Atoi(v); err != nil {
			return fail(errors.InvalidInput("header_row must be an integer"))
		}
	}
	allSheets := false
	if v := c.PostForm("all_sheets"); v != "" {
		if allSheets, err = strconv.ParseBool(v); err != nil {
			return fail(errors.InvalidInput("all_sheets must be true or false"))
		}
	}

	h.log.Debug("received upload %s (%d bytes)", name, header.Size)
	return CreateTableRequest{
		PivotRequest: app.PivotRequest{
			Path:      tmp.Name(),
			Sheet:     c.PostForm("sheet"),
			HeaderRow: headerRow,
			GapPolicy: c.PostForm("gap_policy"),
			Source:    name,
		},
		Sheets:    c.PostFormArray("sheets"),
		AllSheets: allSheets,
	}, cleanup, nil
}

func (h *TableHandler) respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		h.log.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func tableResponse(s *dataset.TableSnapshot) TableResponse {
	columns := make(map[string][]any, len(s.Table))
	for header, col := range s.Table {
		columns[header] = col.Values()
	}
	return TableResponse{TableSnapshot: s, Columns: columns}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return fallback
}
