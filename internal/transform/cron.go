package transform

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/TodayDesign/vercel-project-dashboard/internal/model"
	"github.com/TodayDesign/vercel-project-dashboard/internal/vercel"
)

// DefaultCronSchedule is used for definitions without a schedule.
const DefaultCronSchedule = "0 0 * * *"

// NormalizeCrons converts the project's cron definitions. The result is
// never nil. Definitions that are not a JSON list produce no jobs, and
// list elements that are not objects are treated as empty definitions.
//
// The upstream record carries no run history, so NextRun and LastRun are
// placeholders one hour either side of now.
func NormalizeCrons(p *vercel.Project, now time.Time) []model.CronJob {
	jobs := []model.CronJob{}
	if p == nil || p.Crons == nil || len(p.Crons.Definitions) == 0 {
		return jobs
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(p.Crons.Definitions, &raw); err != nil {
		return jobs
	}

	// A zero timestamp means never disabled.
	status := model.StatusActive
	if p.Crons.DisabledAt != nil && *p.Crons.DisabledAt != 0 {
		status = model.StatusInactive
	}
	nextRun := formatTime(now.Add(time.Hour))
	lastRun := formatTime(now.Add(-time.Hour))

	for i, item := range raw {
		var def vercel.CronDefinition
		// Partially typed elements keep whatever fields decoded cleanly.
		_ = json.Unmarshal(item, &def)

		n := strconv.Itoa(i + 1)
		jobs = append(jobs, model.CronJob{
			ID:          "cron_" + n,
			Name:        orDefault(def.Name, "Cron Job "+n),
			Schedule:    orDefault(def.Schedule, DefaultCronSchedule),
			NextRun:     nextRun,
			LastRun:     lastRun,
			Status:      status,
			Endpoint:    orDefault(def.Path, "/api/cron/"+n),
			Placeholder: true,
		})
	}
	return jobs
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
