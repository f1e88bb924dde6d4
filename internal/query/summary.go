package query

import (
	"math"
	"sort"

	"github.com/Tsukasa80/rg-app-v2/internal/models"
)

// TagStat is the per-tag breakdown of an entry set.
type TagStat struct {
	Tag       string  `json:"tag"`
	Count     int     `json:"count"`
	AvgEnergy float64 `json:"avgEnergy"`
}

// Summary holds the aggregate statistics for an entry set.
type Summary struct {
	Total           int         `json:"total"`
	GreenCount      int         `json:"greenCount"`
	RedCount        int         `json:"redCount"`
	AvgEnergy       float64     `json:"avgEnergy"`
	MedianEnergy    int         `json:"medianEnergy"`
	EnergyHistogram map[int]int `json:"energyHistogram"`
	TagStats        []TagStat   `json:"tagStats"`
	TotalDuration   int         `json:"totalDuration"`
	AvgDuration     float64     `json:"avgDuration"`
}

// Summarise reduces an entry set to its summary statistics. Pure; an empty or
// nil input yields a fully populated zero summary, never an error.
func Summarise(entries []models.ActivityEntry) Summary {
	histogram := make(map[int]int, len(models.EnergyLevels))
	for _, level := range models.EnergyLevels {
		histogram[level] = 0
	}

	summary := Summary{
		EnergyHistogram: histogram,
		TagStats:        []TagStat{},
	}
	if len(entries) == 0 {
		return summary
	}

	summary.Total = len(entries)

	energies := make([]int, 0, len(entries))
	sumEnergy := 0
	for _, entry := range entries {
		switch entry.Type {
		case models.EntryGreen:
			summary.GreenCount++
		case models.EntryRed:
			summary.RedCount++
		}
		energies = append(energies, entry.Energy)
		sumEnergy += entry.Energy
		histogram[entry.Energy]++
		summary.TotalDuration += entry.Duration()
	}

	sort.Ints(energies)
	summary.AvgEnergy = round1(float64(sumEnergy) / float64(len(entries)))
	// Lower median: for even counts this is the lower of the two middle values.
	summary.MedianEnergy = energies[(len(energies)-1)/2]

	summary.TagStats = tagStats(entries)

	summary.AvgDuration = 0
	if summary.TotalDuration > 0 {
		summary.AvgDuration = round1(float64(summary.TotalDuration) / float64(len(entries)))
	}

	return summary
}

// tagStats aggregates per-tag counts and mean energy, sorted by count
// descending. Ties keep the order tags were first seen in.
func tagStats(entries []models.ActivityEntry) []TagStat {
	type acc struct {
		count       int
		totalEnergy int
	}
	order := []string{}
	byTag := map[string]*acc{}

	for _, entry := range entries {
		for _, tag := range entry.Tags {
			a, ok := byTag[tag]
			if !ok {
				a = &acc{}
				byTag[tag] = a
				order = append(order, tag)
			}
			a.count++
			a.totalEnergy += entry.Energy
		}
	}

	stats := make([]TagStat, 0, len(order))
	for _, tag := range order {
		a := byTag[tag]
		stats = append(stats, TagStat{
			Tag:       tag,
			Count:     a.count,
			AvgEnergy: round1(float64(a.totalEnergy) / float64(a.count)),
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	return stats
}

// round1 rounds half up at one decimal place (-0.25 -> -0.2, 0.25 -> 0.3).
func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
