package casestudy

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"consultancy-workers/internal/common/errors"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	DefaultIndex = "case_studies"

	DefaultSearchSize = 20
	MaxSearchSize     = 100
)

// SearchQuery filters the case-study index. PublishedOnly defaults to true.
type SearchQuery struct {
	Text          string `json:"query,omitempty"`
	Industry      string `json:"industry,omitempty"`
	CompanySize   string `json:"companySize,omitempty"`
	Technology    string `json:"technology,omitempty"`
	ProcessType   string `json:"processType,omitempty"`
	IsFeatured    *bool  `json:"isFeatured,omitempty"`
	PublishedOnly *bool  `json:"publishedOnly,omitempty"`
	From          int    `json:"from"`
	Size          int    `json:"size"`
}

// Normalized clamps the pagination into range.
func (q SearchQuery) Normalized() SearchQuery {
	if q.From < 0 {
		q.From = 0
	}
	switch {
	case q.Size <= 0:
		q.Size = DefaultSearchSize
	case q.Size > MaxSearchSize:
		q.Size = MaxSearchSize
	}
	return q
}

// Body is the search request body for q.
func (q SearchQuery) Body() map[string]interface{} {
	must := []interface{}{}
	if q.Text != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.Text,
				"fields": []string{"title^3", "challenge", "solution", "results"},
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	filter := []interface{}{}
	term := func(field string, value interface{}) {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{field: value},
		})
	}
	if q.PublishedOnly == nil || *q.PublishedOnly {
		term("is_published", true)
	}
	if q.Industry != "" {
		term("industry", q.Industry)
	}
	if q.CompanySize != "" {
		term("company_size", q.CompanySize)
	}
	if q.Technology != "" {
		term("technologies_used", q.Technology)
	}
	if q.ProcessType != "" {
		term("process_types", q.ProcessType)
	}
	if q.IsFeatured != nil {
		term("is_featured", *q.IsFeatured)
	}

	return map[string]interface{}{
		"from": q.From,
		"size": q.Size,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"is_featured": map[string]interface{}{"order": "desc"}},
			map[string]interface{}{"publish_date": map[string]interface{}{"order": "desc", "missing": "_last"}},
			"_score",
		},
	}
}

// Document is the indexed form of a case study.
type Document struct {
	ID                 string     `json:"id"`
	Slug               string     `json:"slug"`
	Title              string     `json:"title"`
	ClientName         string     `json:"client_name"`
	Industry           string     `json:"industry"`
	CompanySize        string     `json:"company_size"`
	Challenge          string     `json:"challenge"`
	Solution           string     `json:"solution"`
	Results            string     `json:"results"`
	ImplementationTime int        `json:"implementation_time"`
	TechnologiesUsed   []string   `json:"technologies_used,omitempty"`
	ProcessTypes       []string   `json:"process_types,omitempty"`
	CostSavings        *float64   `json:"cost_savings,omitempty"`
	ROIPercentage      *float64   `json:"roi_percentage,omitempty"`
	MetaDescription    string     `json:"meta_description,omitempty"`
	HeroImageURL       string     `json:"hero_image_url,omitempty"`
	IsPublished        bool       `json:"is_published"`
	IsFeatured         bool       `json:"is_featured"`
	PublishDate        *time.Time `json:"publish_date,omitempty"`
}

// Document returns the index document for cs.
func (cs *CaseStudy) Document() Document {
	return Document{
		ID:                 cs.ID,
		Slug:               cs.Slug,
		Title:              cs.Title,
		ClientName:         cs.ClientName,
		Industry:           cs.Industry,
		CompanySize:        cs.CompanySize,
		Challenge:          cs.Challenge,
		Solution:           cs.Solution,
		Results:            cs.Results,
		ImplementationTime: cs.ImplementationTime,
		TechnologiesUsed:   cs.TechnologiesUsed,
		ProcessTypes:       cs.ProcessTypes,
		CostSavings:        cs.CostSavings,
		ROIPercentage:      cs.ROIPercentage,
		MetaDescription:    cs.MetaDescription,
		HeroImageURL:       cs.HeroImageURL,
		IsPublished:        cs.IsPublished,
		IsFeatured:         cs.IsFeatured,
		PublishDate:        cs.PublishDate,
	}
}

type Hit struct {
	Document
	Score float64 `json:"score"`
}

type SearchResult struct {
	Hits      []Hit   `json:"hits"`
	TotalHits int64   `json:"totalHits"`
	MaxScore  float64 `json:"maxScore"`
	Took      int64   `json:"took"`
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Score  *float64 `json:"_score"`
			Source Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Searcher queries and maintains the case-study index.
type Searcher struct {
	client *elasticsearch.Client
	index  string
}

func NewSearcher(client *elasticsearch.Client, index string) *Searcher {
	if index == "" {
		index = DefaultIndex
	}
	return &Searcher{client: client, index: index}
}

func (s *Searcher) Index() string {
	return s.index
}

// Search runs q (normalized) against the index.
func (s *Searcher) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	q = q.Normalized()
	body, err := json.Marshal(q.Body())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	res, err := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, s.client)
	if err != nil {
		return nil, s.requestError(ctx, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, errors.NewIndexNotFoundError(s.index)
	}
	if res.IsError() {
		return nil, errors.NewSearchQueryFailedError(s.index, fmt.Errorf("search: %s", res.Status()))
	}

	var decoded searchResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, errors.NewSearchQueryFailedError(s.index, fmt.Errorf("decode response: %w", err))
	}

	result := &SearchResult{
		Hits:      make([]Hit, 0, len(decoded.Hits.Hits)),
		TotalHits: decoded.Hits.Total.Value,
		Took:      decoded.Took,
	}
	if decoded.Hits.MaxScore != nil {
		result.MaxScore = *decoded.Hits.MaxScore
	}
	for _, h := range decoded.Hits.Hits {
		hit := Hit{Document: h.Source}
		if h.Score != nil {
			hit.Score = *h.Score
		}
		result.Hits = append(result.Hits, hit)
	}
	return result, nil
}

// Put indexes cs under its slug and returns the Elasticsearch result
// ("created" or "updated").
func (s *Searcher) Put(ctx context.Context, cs *CaseStudy) (string, error) {
	body, err := json.Marshal(cs.Document())
	if err != nil {
		return "", errors.NewInternalError(err)
	}

	res, err := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: cs.Slug,
		Body:       bytes.NewReader(body),
		Refresh:    "wait_for",
	}.Do(ctx, s.client)
	if err != nil {
		return "", s.requestError(ctx, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", errors.NewSearchQueryFailedError(s.index, fmt.Errorf("index %s: %s", cs.Slug, res.Status()))
	}

	var decoded struct {
		Result string `json:"result"`
	}
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return "", errors.NewSearchQueryFailedError(s.index, fmt.Errorf("decode response: %w", err))
	}
	return decoded.Result, nil
}

func (s *Searcher) requestError(ctx context.Context, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewSearchTimeoutError(s.index)
	}
	return errors.NewSearchQueryFailedError(s.index, err)
}
