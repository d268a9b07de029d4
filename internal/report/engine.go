// Package report builds the productivity report: system totals, weekly /
// monthly / annual trend buckets and per-responsible statistics over the
// current document snapshot.
package report

import (
	"strconv"
	"time"

	assigneeentity "github.com/seapgd/docket-core/internal/assignee/entity"
	docentity "github.com/seapgd/docket-core/internal/document/entity"
	userentity "github.com/seapgd/docket-core/internal/user/entity"
)

// ChartBucket is one time-series point. The fixed core fields keep the
// dashboard's original JSON names; per-type counts travel in an explicit
// byType map rather than spread into the record.
type ChartBucket struct {
	Period      string         `json:"period"`
	Total       int            `json:"total"`
	Concluidos  int            `json:"concluidos"`
	EmAndamento int            `json:"emAndamento"`
	Date        string         `json:"date"`
	ByType      map[string]int `json:"byType"`
}

// ResponsibleProductivity is the per-responsible block; a responsible is
// either a login user or a document assignee.
type ResponsibleProductivity struct {
	UserID                int64          `json:"userId"`
	UserName              string         `json:"userName"`
	TotalDocuments        int            `json:"totalDocuments"`
	CompletedDocuments    int            `json:"completedDocuments"`
	InProgressDocuments   int            `json:"inProgressDocuments"`
	OverdueDocuments      int            `json:"overdueDocuments"`
	CompletionRate        float64        `json:"completionRate"`
	AverageCompletionTime float64        `json:"averageCompletionTime"`
	DocumentsByType       map[string]int `json:"documentsByType"`
	MonthlyProduction     []any          `json:"monthlyProduction"`
}

// ProductivityReport is the full response payload.
type ProductivityReport struct {
	TotalDocuments        int                       `json:"totalDocuments"`
	CompletedDocuments    int                       `json:"completedDocuments"`
	InProgressDocuments   int                       `json:"inProgressDocuments"`
	OverdueDocuments      int                       `json:"overdueDocuments"`
	AverageCompletionTime float64                   `json:"averageCompletionTime"`
	CompletionRate        float64                   `json:"completionRate"`
	DocumentsByType       map[string]int            `json:"documentsByType"`
	UserProductivity      []ResponsibleProductivity `json:"userProductivity"`
	DailyProduction       []any                     `json:"dailyProduction"`
	MonthlyTrends         []ChartBucket             `json:"monthlyTrends"`
	WeeklyTrends          []ChartBucket             `json:"weeklyTrends"`
	AnnualTrends          []ChartBucket             `json:"annualTrends"`
}

const (
	weeklyBuckets  = 8
	monthlyBuckets = 12
	annualBuckets  = 3
)

func isOverdue(d *docentity.Document, now time.Time) bool {
	if d.Deadline == nil {
		return false
	}
	return d.Deadline.Before(now) && d.Status != docentity.StatusCompleted
}

func countByType(docs []docentity.Document) map[string]int {
	byType := map[string]int{}
	for i := range docs {
		if docs[i].Type != "" {
			byType[docs[i].Type]++
		}
	}
	return byType
}

func rate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

func createdBetween(docs []docentity.Document, start, end time.Time) []docentity.Document {
	out := []docentity.Document{}
	for i := range docs {
		c := docs[i].CreatedAt
		if !c.Before(start) && !c.After(end) {
			out = append(out, docs[i])
		}
	}
	return out
}

func bucketFor(period string, start time.Time, docs []docentity.Document) ChartBucket {
	completed := 0
	inProgress := 0
	for i := range docs {
		switch docs[i].Status {
		case docentity.StatusCompleted, docentity.StatusArchived:
			completed++
		case docentity.StatusInProgress:
			inProgress++
		}
	}
	return ChartBucket{
		Period:      period,
		Total:       len(docs),
		Concluidos:  completed,
		EmAndamento: inProgress,
		Date:        start.Format("2006-01-02"),
		ByType:      countByType(docs),
	}
}

var monthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// BuildReport computes the full report from an in-memory snapshot. It is
// read-only and deterministic for a fixed now.
//
// Known simplification carried over from the dashboard: the current and the
// immediately preceding weekly/monthly buckets include all documents at their
// present status instead of a historical snapshot; only older buckets filter
// by creation date.
func BuildReport(now time.Time, active, archived []docentity.Document, users []userentity.User, assignees []assigneeentity.Assignee) *ProductivityReport {
	all := make([]docentity.Document, 0, len(active)+len(archived))
	all = append(all, active...)
	all = append(all, archived...)

	totalDocuments := len(all)
	completedDocuments := len(archived)
	inProgressDocuments := 0
	overdueDocuments := 0
	for i := range active {
		switch active[i].Status {
		case docentity.StatusCompleted:
			completedDocuments++
		case docentity.StatusInProgress:
			inProgressDocuments++
		}
		if isOverdue(&active[i], now) {
			overdueDocuments++
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	weekly := make([]ChartBucket, 0, weeklyBuckets)
	for i := weeklyBuckets - 1; i >= 0; i-- {
		start := today.AddDate(0, 0, -i*7)
		end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
		docs := all
		if i > 1 {
			docs = createdBetween(all, start, end)
		}
		weekly = append(weekly, bucketFor("Sem "+strconv.Itoa(weeklyBuckets-i), start, docs))
	}

	monthly := make([]ChartBucket, 0, monthlyBuckets)
	for i := monthlyBuckets - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
		docs := all
		if i > 1 {
			docs = createdBetween(all, start, end)
		}
		monthly = append(monthly, bucketFor(monthNames[start.Month()-1], start, docs))
	}

	annual := make([]ChartBucket, 0, annualBuckets)
	for i := annualBuckets - 1; i >= 0; i-- {
		start := time.Date(now.Year()-i, time.January, 1, 0, 0, 0, 0, now.Location())
		end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
		docs := createdBetween(all, start, end)
		annual = append(annual, bucketFor(start.Format("2006"), start, docs))
	}

	return &ProductivityReport{
		TotalDocuments:      totalDocuments,
		CompletedDocuments:  completedDocuments,
		InProgressDocuments: inProgressDocuments,
		OverdueDocuments:    overdueDocuments,
		CompletionRate:      rate(completedDocuments, totalDocuments),
		DocumentsByType:     countByType(all),
		UserProductivity:    responsibleProductivity(now, active, archived, users, assignees),
		DailyProduction:     []any{},
		MonthlyTrends:       monthly,
		WeeklyTrends:        weekly,
		AnnualTrends:        annual,
	}
}

type responsible struct {
	id     int64
	name   string
	isUser bool
}

func matches(d *docentity.Document, r responsible) bool {
	if r.isUser {
		return d.AssignedTo != nil && *d.AssignedTo == r.id
	}
	return d.DocumentAssigneeID != nil && *d.DocumentAssigneeID == r.id
}

// responsibleProductivity computes the per-responsible blocks, login users
// first then assignees, dropping anyone with zero documents.
func responsibleProductivity(now time.Time, active, archived []docentity.Document, users []userentity.User, assignees []assigneeentity.Assignee) []ResponsibleProductivity {
	responsibles := make([]responsible, 0, len(users)+len(assignees))
	for i := range users {
		responsibles = append(responsibles, responsible{id: users[i].ID, name: users[i].Name, isUser: true})
	}
	for i := range assignees {
		responsibles = append(responsibles, responsible{id: assignees[i].ID, name: assignees[i].FullName(), isUser: false})
	}

	out := []ResponsibleProductivity{}
	for _, r := range responsibles {
		mineActive := []docentity.Document{}
		for i := range active {
			if matches(&active[i], r) {
				mineActive = append(mineActive, active[i])
			}
		}
		mineArchived := []docentity.Document{}
		for i := range archived {
			if matches(&archived[i], r) {
				mineArchived = append(mineArchived, archived[i])
			}
		}
		total := len(mineActive) + len(mineArchived)
		if total == 0 {
			continue
		}

		completed := len(mineArchived)
		inProgress := 0
		overdue := 0
		for i := range mineActive {
			switch mineActive[i].Status {
			case docentity.StatusCompleted:
				completed++
			case docentity.StatusInProgress:
				inProgress++
			}
			if isOverdue(&mineActive[i], now) {
				overdue++
			}
		}

		out = append(out, ResponsibleProductivity{
			UserID:              r.id,
			UserName:            r.name,
			TotalDocuments:      total,
			CompletedDocuments:  completed,
			InProgressDocuments: inProgress,
			OverdueDocuments:    overdue,
			CompletionRate:      rate(completed, total),
			DocumentsByType:     countByType(append(append([]docentity.Document{}, mineActive...), mineArchived...)),
			MonthlyProduction:   []any{},
		})
	}
	return out
}
