package plot

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/raykavin/chartkit/pkg/core"
)

// handleHealth handles health check requests
func (c *Chart) handleHealth(w http.ResponseWriter, _ *http.Request) {
	c.Lock()
	lastUpdate := c.lastUpdate
	c.Unlock()

	// unhealthy if no updates in more of 10 minutes
	if time.Since(lastUpdate) > 10*time.Minute {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(lastUpdate.String())); err != nil {
			c.log.Error("Failed to write health status: ", err)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleIndex handles the main page request
func (c *Chart) handleIndex(w http.ResponseWriter, r *http.Request) {
	names := c.Names()
	sort.Strings(names)

	name := r.URL.Query().Get("chart")
	if name == "" && len(names) > 0 {
		http.Redirect(w, r, fmt.Sprintf("/?chart=%s", names[0]), http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	err := c.indexHTML.Execute(w, map[string]any{
		"chart":  name,
		"charts": names,
		"script": c.scriptContent,
	})

	if err != nil {
		c.log.Error("Template execution failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleGeometry serves the current frame geometry of a chart as JSON
func (c *Chart) handleGeometry(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("chart")
	if name == "" {
		http.Error(w, "Missing chart parameter", http.StatusBadRequest)
		return
	}

	geom, err := c.Frame(name)
	if err != nil {
		c.log.WithError(err).Error("geometry build failed")
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	// The chart may be unmounted between Frame and this lookup.
	instance, ok := c.Instance(name)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"chart":    name,
		"kind":     instance.Kind,
		"geometry": geom,
		"state":    instance.Controller().State(),
	}); err != nil {
		c.log.Error("Failed to encode geometry: ", err)
	}
}

// handleSummary serves the read-only aggregates consumed by the
// accessibility layer
func (c *Chart) handleSummary(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("chart")
	instance, ok := c.Instance(name)
	if !ok || instance.Dataset() == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(core.Summarize(instance.Dataset().Points)); err != nil {
		c.log.Error("Failed to encode summary: ", err)
	}
}

// handleExport handles CSV export of a chart dataset
func (c *Chart) handleExport(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("chart")
	instance, ok := c.Instance(name)
	if !ok || instance.Dataset() == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename="+name+".csv")

	buffer := bytes.NewBuffer(nil)
	csvWriter := csv.NewWriter(buffer)

	if err := csvWriter.Write([]string{"x", "y", "label", "category"}); err != nil {
		c.log.Error("Failed writing CSV header: ", err)
		http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
		return
	}

	for _, p := range instance.Dataset().Points {
		record := []string{
			strconv.FormatFloat(p.X, 'f', -1, 64),
			strconv.FormatFloat(p.Y, 'f', -1, 64),
			p.Label,
			p.Category,
		}
		if err := csvWriter.Write(record); err != nil {
			c.log.Error("Failed writing CSV data: ", err)
			http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
			return
		}
	}
	csvWriter.Flush()

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buffer.Bytes()); err != nil {
		c.log.Error("Failed writing CSV response: ", err)
	}
}
