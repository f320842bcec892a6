package application

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/medibook/medibook-api/internal/domain/entity"
	"github.com/medibook/medibook-api/internal/domain/repository"
	"github.com/medibook/medibook-api/pkg/helpers"
)

const (
	defaultPageSize    = 10
	maxPageSize        = 50
	specialtiesKey     = "doctors:specialties"
	specialtiesTTL     = 10 * time.Minute
	esSearchCandidates = 100
)

// DoctorService serves the read-only doctor directory. Free-text search runs
// through Elasticsearch when a client is configured and falls back to SQL
// ILIKE matching otherwise (or when ES is unreachable).
type DoctorService struct {
	Repo    repository.DoctorRepository
	Redis   *redis.Client
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewDoctorService(repo repository.DoctorRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *DoctorService {
	return &DoctorService{Repo: repo, Redis: rdb, Logger: logger, ES: es, ESIndex: esIndex}
}

func (s *DoctorService) Search(ctx context.Context, q repository.DoctorQuery) ([]*entity.Doctor, int, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}

	if q.Search != "" && s.ES != nil && s.ESIndex != "" {
		docs, total, err := s.searchES(ctx, q)
		if err == nil {
			return docs, total, nil
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("es search failed, falling back to sql")
		}
	}

	return s.Repo.List(ctx, q)
}

// searchES ranks candidates with a multi_match, loads the rows from Postgres,
// then applies the remaining filter/sort/pagination in memory. The candidate
// window is capped; a directory past that size should push filters into ES.
func (s *DoctorService) searchES(ctx context.Context, q repository.DoctorQuery) ([]*entity.Doctor, int, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q.Search,
				"fields": []string{"name^2", "specialty", "specialization", "location"},
			},
		},
		"size": esSearchCandidates,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, 0, errESResponse(res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}

	docs, err := s.Repo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	if q.Specialty != "" {
		filtered := docs[:0]
		for _, d := range docs {
			if strings.Contains(strings.ToLower(d.Specialty), strings.ToLower(q.Specialty)) {
				filtered = append(filtered, d)
			}
		}
		docs = filtered
	}
	sortDoctors(docs, q.SortBy)

	total := len(docs)
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return docs[start:end], total, nil
}

func sortDoctors(docs []*entity.Doctor, sortBy string) {
	switch sortBy {
	case "rating":
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].Rating > docs[j].Rating })
	case "experience":
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].ExperienceYears > docs[j].ExperienceYears })
	case "distance":
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].DistanceKM < docs[j].DistanceKM })
	case "price":
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].ConsultationFee < docs[j].ConsultationFee })
	}
}

func (s *DoctorService) Get(ctx context.Context, id string) (*entity.Doctor, error) {
	return s.Repo.GetByID(ctx, id)
}

// Specialties returns the distinct specialty list, cached briefly in redis.
func (s *DoctorService) Specialties(ctx context.Context) ([]string, error) {
	if s.Redis != nil {
		var cached []string
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, specialtiesKey, &cached); err == nil && ok {
			return cached, nil
		}
	}
	specialties, err := s.Repo.Specialties(ctx)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, specialtiesKey, specialties, specialtiesTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("specialties cache write failed")
		}
	}
	return specialties, nil
}

type esResponseError struct{ status string }

func (e esResponseError) Error() string { return "es search: " + e.status }

func errESResponse(status string) error { return esResponseError{status: status} }
