package httpapi

import (
	"bytes"
	"net/http"
	"strings"
)

func (h *Handler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PreviewImport")
	defer span.End()

	file, err := readUpload(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.importService.Preview(ctx, file.Filename, file.Content)
	if err != nil {
		h.logger.WarnContext(ctx, "import preview failed", "filename", file.Filename, "error", err)
		writeError(ctx, w, err)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "html") {
		var buf bytes.Buffer
		if err := table.WriteHTML(&buf); err != nil {
			writeError(ctx, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
		return
	}

	writeSuccess(ctx, w, http.StatusOK, previewToDTO(table))
}

func (h *Handler) RunImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunImport")
	defer span.End()

	file, err := readUpload(w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	kind := r.PathValue("kind")
	seasonID := r.FormValue("season_id")
	result, err := h.importService.Import(ctx, kind, seasonID, file.Filename, file.Content)
	if err != nil {
		h.logger.WarnContext(ctx, "import failed", "kind", kind, "season_id", seasonID, "filename", file.Filename, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, importResultToDTO(result))
}

func (h *Handler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DownloadTemplate")
	defer span.End()

	kind := r.PathValue("kind")
	file, err := h.exportService.Template(ctx, kind)
	if err != nil {
		h.logger.WarnContext(ctx, "template download failed", "kind", kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeFile(ctx, w, file.Name, file.ContentType, file.Body)
}

func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DownloadReport")
	defer span.End()

	entity := r.PathValue("entity")
	seasonID := r.PathValue("seasonID")
	file, err := h.exportService.Report(ctx, entity, seasonID, r.URL.Query().Get("format"))
	if err != nil {
		h.logger.WarnContext(ctx, "report download failed", "entity", entity, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeFile(ctx, w, file.Name, file.ContentType, file.Body)
}
