// Package report derives revenue views from the project collection. Every
// function is pure: it takes projects and an hourly rate and recomputes from
// scratch, so there is nothing to cache or invalidate.
//
// Revenue is attributed to the period in which an entry ended, not where it
// began. Project counts key off creation time instead; the two axes are
// deliberately distinct and not comparable.
package report

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/ryplify/ryptrack/internal/domain"
)

// Summary is the headline revenue overview. Free projects contribute only to
// PotentialProfit, never to the real revenue fields.
type Summary struct {
	MonthRevenue    float64 `json:"monthRevenue"`
	YearRevenue     float64 `json:"yearRevenue"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PotentialProfit float64 `json:"potentialProfit"`
}

// Row is one label/value pair of a chart dataset.
type Row struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Charts bundles every chart dataset the dashboard shows.
type Charts struct {
	TopProjects         []Row `json:"topProjects"`
	NewProjectsPerMonth []Row `json:"newProjectsPerMonth"`
	EarningsByYear      []Row `json:"earningsByYear"`
	EarningsByMonth     []Row `json:"earningsByMonth"`
	FreeProjectHours    []Row `json:"freeProjectHours"`
	PotentialByYear     []Row `json:"potentialByYear"`
	PotentialByMonth    []Row `json:"potentialByMonth"`
}

// Round2 rounds to two decimals. Presentation and export only; sums are
// carried at full precision to avoid compounding rounding error.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BuildSummary computes the monthly, yearly and all-time revenue of paid
// projects relative to now, plus the potential profit of free projects.
func BuildSummary(projects []domain.Project, hourlyRate float64, now time.Time) Summary {
	var sum Summary
	year, month := now.Year(), now.Month()
	for _, p := range projects {
		if p.IsFree {
			sum.PotentialProfit += p.Cost(hourlyRate)
			continue
		}
		for _, e := range p.TimeEntries {
			earned := e.Seconds() / 3600 * hourlyRate
			sum.TotalRevenue += earned
			end := e.EndTime()
			if end.Year() != year {
				continue
			}
			sum.YearRevenue += earned
			if end.Month() == month {
				sum.MonthRevenue += earned
			}
		}
	}
	return sum
}

// BuildCharts assembles all dashboard datasets. Monthly breakdowns cover the
// year of now.
func BuildCharts(projects []domain.Project, hourlyRate float64, now time.Time) Charts {
	return Charts{
		TopProjects:         TopProjects(projects, hourlyRate, 5),
		NewProjectsPerMonth: NewProjectsPerMonth(projects),
		EarningsByYear:      EarningsByYear(projects, hourlyRate),
		EarningsByMonth:     EarningsByMonth(projects, hourlyRate, now.Year()),
		FreeProjectHours:    FreeProjectHours(projects),
		PotentialByYear:     PotentialByYear(projects, hourlyRate),
		PotentialByMonth:    PotentialByMonth(projects, hourlyRate, now.Year()),
	}
}

// TopProjects ranks active paid projects by cost, highest first, keeping
// collection order on ties. A negative n means no limit.
func TopProjects(projects []domain.Project, hourlyRate float64, n int) []Row {
	rows := []Row{}
	for _, p := range projects {
		if p.IsFree || !p.IsActive {
			continue
		}
		rows = append(rows, Row{Label: p.Name, Value: Round2(p.Cost(hourlyRate))})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Value > rows[j].Value })
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// NewProjectsPerMonth counts paid projects by the month they were created.
func NewProjectsPerMonth(projects []domain.Project) []Row {
	counts := map[string]float64{}
	for _, p := range projects {
		if p.IsFree {
			continue
		}
		counts[p.CreatedAt.Format("2006-01")]++
	}
	return sortedRows(counts)
}

// EarningsByYear totals paid-project revenue per year an entry ended in.
func EarningsByYear(projects []domain.Project, hourlyRate float64) []Row {
	return yearRows(projects, hourlyRate, false)
}

// EarningsByMonth totals paid-project revenue per month of the given year.
func EarningsByMonth(projects []domain.Project, hourlyRate float64, year int) []Row {
	return monthRows(projects, hourlyRate, false, year)
}

// FreeProjectHours lists the hours tracked on each free project.
func FreeProjectHours(projects []domain.Project) []Row {
	rows := []Row{}
	for _, p := range projects {
		if !p.IsFree {
			continue
		}
		rows = append(rows, Row{Label: p.Name, Value: Round2(p.TotalSeconds / 3600)})
	}
	return rows
}

// PotentialByYear totals hypothetical free-project revenue per year.
func PotentialByYear(projects []domain.Project, hourlyRate float64) []Row {
	return yearRows(projects, hourlyRate, true)
}

// PotentialByMonth totals hypothetical free-project revenue per month of the
// given year.
func PotentialByMonth(projects []domain.Project, hourlyRate float64, year int) []Row {
	return monthRows(projects, hourlyRate, true, year)
}

func yearRows(projects []domain.Project, hourlyRate float64, free bool) []Row {
	totals := map[string]float64{}
	for _, p := range projects {
		if p.IsFree != free {
			continue
		}
		for _, e := range p.TimeEntries {
			key := strconv.Itoa(e.EndTime().Year())
			totals[key] += e.Seconds() / 3600 * hourlyRate
		}
	}
	return sortedRows(totals)
}

func monthRows(projects []domain.Project, hourlyRate float64, free bool, year int) []Row {
	totals := map[time.Month]float64{}
	for _, p := range projects {
		if p.IsFree != free {
			continue
		}
		for _, e := range p.TimeEntries {
			end := e.EndTime()
			if end.Year() != year {
				continue
			}
			totals[end.Month()] += e.Seconds() / 3600 * hourlyRate
		}
	}
	// One row per month that has data, in calendar order. Empty months are
	// not zero-filled.
	rows := []Row{}
	for m := time.January; m <= time.December; m++ {
		if v, ok := totals[m]; ok {
			rows = append(rows, Row{Label: m.String()[:3], Value: Round2(v)})
		}
	}
	return rows
}

func sortedRows(totals map[string]float64) []Row {
	rows := make([]Row, 0, len(totals))
	for label, v := range totals {
		rows = append(rows, Row{Label: label, Value: Round2(v)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	return rows
}
