// Package jobfeed produces the static public and private sector job feed.
package jobfeed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"kariyer_backend/internal/models"
)

const Source = "kariyer-feed"

// Generator builds listings from a fixed seed so repeated runs on the same day yield the same external ids.
type Generator struct {
	seed uint64
}

func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed}
}

func dayKey(day time.Time) uint64 {
	y, m, d := day.UTC().Date()
	return uint64(y*10000 + int(m)*100 + d)
}

// Generate returns count listings dated on day.
func (g *Generator) Generate(count int, day time.Time) []models.JobListing {
	if count <= 0 {
		return nil
	}
	day = day.UTC().Truncate(24 * time.Hour)
	rng := rand.New(rand.NewPCG(g.seed, dayKey(day)))

	jobs := make([]models.JobListing, 0, count)
	for i := 0; i < count; i++ {
		jobs = append(jobs, g.listing(rng, day, i))
	}
	return jobs
}

func (g *Generator) listing(rng *rand.Rand, day time.Time, i int) models.JobListing {
	sector := models.JobSectorPublic
	pool := publicInstitutions
	reqPool := publicRequirements
	if rng.IntN(100) < 40 {
		sector = models.JobSectorPrivate
		pool = privateInstitutions
		reqPool = privateRequirements
	}

	inst := pick(rng, pool)
	title := pick(rng, titlesByCategory[inst.Category])
	city := pick(rng, cities)
	education := pick(rng, educationLevels)
	positions := 1 + rng.IntN(25)

	jobType := models.JobTypeFullTime
	switch n := rng.IntN(100); {
	case sector == models.JobSectorPublic && n < 15:
		jobType = models.JobTypeContract
	case sector == models.JobSectorPrivate && n < 10:
		jobType = models.JobTypeInternship
	case sector == models.JobSectorPrivate && n < 25:
		jobType = models.JobTypePartTime
	}

	deadline := day.AddDate(0, 0, 7+rng.IntN(39))
	posted := day.Add(time.Duration(rng.IntN(12*60)) * time.Minute)

	salary := ""
	if sector == models.JobSectorPrivate {
		salary = pick(rng, privateSalaries)
	}

	externalID := fmt.Sprintf("kk-%d-%x-%04d", dayKey(day), g.seed, i)

	return models.JobListing{
		ExternalID:   externalID,
		Title:        title,
		Institution:  inst.Name,
		City:         city,
		Sector:       sector,
		Type:         jobType,
		Category:     inst.Category,
		Description:  describe(inst.Name, title, city, positions, sector),
		Requirements: requirements(rng, reqPool, education),
		Education:    education,
		Positions:    positions,
		Salary:       salary,
		Source:       Source,
		PostedAt:     posted,
		Deadline:     &deadline,
		IsActive:     true,
	}
}

func describe(inst, title, city string, positions int, sector models.JobSector) string {
	if sector == models.JobSectorPublic {
		return fmt.Sprintf("%s, %s ilinde görevlendirilmek üzere %d adet %s kadrosu için alım yapacaktır. Başvurular e-Devlet üzerinden alınacaktır.",
			inst, city, positions, title)
	}
	return fmt.Sprintf("%s bünyesinde %s lokasyonunda çalışacak %d %s arıyoruz. Dinamik ekibimize katılacak adayların başvurularını bekliyoruz.",
		inst, city, positions, title)
}

func requirements(rng *rand.Rand, pool []string, education string) string {
	n := 2 + rng.IntN(3)
	picked := make([]string, 0, n+1)
	picked = append(picked, education+" mezunu olmak")
	for _, idx := range rng.Perm(len(pool))[:min(n, len(pool))] {
		picked = append(picked, pool[idx])
	}
	return "- " + strings.Join(picked, "\n- ")
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
