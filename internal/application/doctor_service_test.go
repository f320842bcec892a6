package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
)

func newDoctorService() (*DoctorService, *fakeDoctorRepo) {
	repo := &fakeDoctorRepo{}
	repo.add(&entity.Doctor{Name: "Dr. Rajesh Kumar Sharma", Specialty: "Cardiology", Specialization: "Interventional Cardiology", Rating: 4.9, ExperienceYears: 15, Location: "AIIMS Delhi", DistanceKM: 2.3, ConsultationFee: 800})
	repo.add(&entity.Doctor{Name: "Dr. Priya Mehta", Specialty: "Neurology", Specialization: "Pediatric Neurology", Rating: 4.8, ExperienceYears: 12, Location: "Fortis Hospital Mumbai", DistanceKM: 3.1, ConsultationFee: 1200})
	repo.add(&entity.Doctor{Name: "Dr. Amit Gupta", Specialty: "General Medicine", Specialization: "Internal Medicine", Rating: 4.8, ExperienceYears: 8, Location: "Max Super Speciality Hospital", DistanceKM: 1.2, ConsultationFee: 500})
	// No ES and no redis: search takes the SQL path, specialties skip the cache.
	return NewDoctorService(repo, nil, nil, nil, ""), repo
}

func TestDoctorSearch(t *testing.T) {
	t.Parallel()
	svc, _ := newDoctorService()
	ctx := context.Background()

	t.Run("free text matches specialty", func(t *testing.T) {
		docs, total, err := svc.Search(ctx, repository.DoctorQuery{Search: "cardio"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, docs, 1)
		assert.Equal(t, "Dr. Rajesh Kumar Sharma", docs[0].Name)
	})

	t.Run("specialty filter", func(t *testing.T) {
		docs, total, err := svc.Search(ctx, repository.DoctorQuery{Specialty: "neuro"})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, docs, 1)
		assert.Equal(t, "Dr. Priya Mehta", docs[0].Name)
	})

	t.Run("sort by price", func(t *testing.T) {
		docs, _, err := svc.Search(ctx, repository.DoctorQuery{SortBy: "price"})
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, 500, docs[0].ConsultationFee)
		assert.Equal(t, 1200, docs[2].ConsultationFee)
	})

	t.Run("pagination clamps", func(t *testing.T) {
		docs, total, err := svc.Search(ctx, repository.DoctorQuery{Page: -5, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, docs, 2, "negative page coerced to first page")

		docs, _, err = svc.Search(ctx, repository.DoctorQuery{Page: 99, Limit: 2})
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestDoctorGet(t *testing.T) {
	t.Parallel()
	svc, repo := newDoctorService()
	ctx := context.Background()

	id := repo.doctors[0].ID
	doc, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDoctorSpecialties(t *testing.T) {
	t.Parallel()
	svc, _ := newDoctorService()

	specialties, err := svc.Specialties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "General Medicine", "Neurology"}, specialties)
}

func TestSortDoctors(t *testing.T) {
	t.Parallel()
	docs := []*entity.Doctor{
		{Name: "a", Rating: 4.1, ExperienceYears: 3, DistanceKM: 9, ConsultationFee: 900},
		{Name: "b", Rating: 4.9, ExperienceYears: 12, DistanceKM: 1, ConsultationFee: 300},
		{Name: "c", Rating: 4.5, ExperienceYears: 7, DistanceKM: 4, ConsultationFee: 600},
	}

	sortDoctors(docs, "rating")
	assert.Equal(t, "b", docs[0].Name)

	sortDoctors(docs, "distance")
	assert.Equal(t, "b", docs[0].Name)
	assert.Equal(t, "a", docs[2].Name)

	sortDoctors(docs, "experience")
	assert.Equal(t, "b", docs[0].Name)

	sortDoctors(docs, "price")
	assert.Equal(t, 300, docs[0].ConsultationFee)
}
