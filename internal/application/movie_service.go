package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/movierama/internal/domain/entity"
	repo "github.com/oksasatya/movierama/internal/domain/repository"
)

// MoviesIndexMapping is the Elasticsearch mapping for the movies index.
const MoviesIndexMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "long"},
      "title":       {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "description": {"type": "text"},
      "user_id":     {"type": "long"},
      "date":        {"type": "date"}
    }
  }
}`

// PosterStorage stores poster images and returns their public URL.
type PosterStorage interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type MovieService struct {
	Store         repo.Store
	Logger        *logrus.Logger
	ES            *elasticsearch.Client
	ESMoviesIndex string
	Posters       PosterStorage

	Now func() time.Time
}

func NewMovieService(store repo.Store, logger *logrus.Logger, es *elasticsearch.Client, esMoviesIndex string, posters PosterStorage) *MovieService {
	return &MovieService{
		Store:         store,
		Logger:        logger,
		ES:            es,
		ESMoviesIndex: esMoviesIndex,
		Posters:       posters,
		Now:           time.Now,
	}
}

// MovieSearchHit is one document from the movies index.
type MovieSearchHit struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int64     `json:"user_id"`
	Date        time.Time `json:"date"`
}

// Register creates a movie posted by p. userID may be zero, in which case the
// principal is the poster; any other value must be the principal's id.
func (s *MovieService) Register(ctx context.Context, p entity.Principal, title, description string, userID int64) (*entity.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrBlankTitle
	}
	if userID == 0 {
		userID = p.ID
	}
	if userID != p.ID {
		return nil, ErrPosterMismatch
	}
	m := &entity.Movie{
		Title:       title,
		Description: description,
		UserID:      userID,
		Date:        s.Now().UTC().Truncate(time.Microsecond),
	}
	if err := s.Store.Repos().Movies.Create(ctx, m); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrTitleTaken
		}
		return nil, err
	}
	_ = s.indexMovie(ctx, m)
	return m, nil
}

func (s *MovieService) FindAll(ctx context.Context) ([]entity.MovieWithUser, error) {
	return s.Store.Repos().Movies.ListWithUsers(ctx)
}

// FindByTitle returns (nil, nil) when no movie has the title.
func (s *MovieService) FindByTitle(ctx context.Context, title string) (*entity.Movie, error) {
	return s.Store.Repos().Movies.GetByTitle(ctx, strings.TrimSpace(title))
}

func (s *MovieService) FindAllByUser(ctx context.Context, userID int64) ([]entity.Movie, error) {
	return s.Store.Repos().Movies.ListByUser(ctx, userID)
}

// UploadPoster stores an image for a movie posted by p and records its URL.
func (s *MovieService) UploadPoster(ctx context.Context, p entity.Principal, title string, r io.Reader, filename, contentType string) (*entity.Movie, error) {
	if s.Posters == nil {
		return nil, ErrPostersDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrUnsupportedImage
	}
	movies := s.Store.Repos().Movies
	m, err := movies.GetByTitle(ctx, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMovieNotFound
	}
	if m.UserID != p.ID {
		return nil, ErrNotMovieOwner
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := path.Join("posters", strconv.FormatInt(m.ID, 10), uuid.NewString()+ext)
	url, err := s.Posters.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, err
	}
	if err := movies.SetPosterURL(ctx, m.ID, url); err != nil {
		return nil, err
	}
	m.PosterURL = url
	_ = s.indexMovie(ctx, m)
	return m, nil
}

func (s *MovieService) indexMovie(ctx context.Context, m *entity.Movie) error {
	if s.ES == nil || s.ESMoviesIndex == "" {
		return nil
	}
	doc := MovieSearchHit{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		UserID:      m.UserID,
		Date:        m.Date,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESMoviesIndex,
		DocumentID: strconv.FormatInt(m.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("movie_id", m.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("movie_id", m.ID).Warn("es index response error")
	}
	return nil
}

// Search performs a multi_match search on title and description.
func (s *MovieService) Search(ctx context.Context, q string, size int) ([]MovieSearchHit, error) {
	q = strings.TrimSpace(q)
	if s.ES == nil || s.ESMoviesIndex == "" || q == "" {
		return []MovieSearchHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESMoviesIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		return nil, errors.New("es search: " + res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source MovieSearchHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]MovieSearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
