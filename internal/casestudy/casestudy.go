// Package casestudy reads and writes the published case-study content:
// the case_studies, case_study_inquiries and industry_benchmarks tables in
// PostgreSQL and the case-study search index in Elasticsearch.
package casestudy

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// CaseStudy is a full case_studies row.
type CaseStudy struct {
	ID                      string     `json:"id"`
	Title                   string     `json:"title"`
	Slug                    string     `json:"slug"`
	ClientName              string     `json:"clientName"`
	ClientLogoURL           string     `json:"clientLogoUrl,omitempty"`
	Industry                string     `json:"industry"`
	CompanySize             string     `json:"companySize"`
	Challenge               string     `json:"challenge"`
	Solution                string     `json:"solution"`
	Results                 string     `json:"results"`
	ImplementationTime      int        `json:"implementationTime"`
	CostSavings             *float64   `json:"costSavings,omitempty"`
	EfficiencyGain          *float64   `json:"efficiencyGain,omitempty"`
	ROIPercentage           *float64   `json:"roiPercentage,omitempty"`
	ErrorReduction          *float64   `json:"errorReduction,omitempty"`
	TimeSavings             *float64   `json:"timeSavings,omitempty"`
	TechnologiesUsed        []string   `json:"technologiesUsed,omitempty"`
	ProcessTypes            []string   `json:"processTypes,omitempty"`
	HeroImageURL            string     `json:"heroImageUrl,omitempty"`
	ClientTestimonial       string     `json:"clientTestimonial,omitempty"`
	ClientTestimonialAuthor string     `json:"clientTestimonialAuthor,omitempty"`
	ClientTestimonialTitle  string     `json:"clientTestimonialTitle,omitempty"`
	MetaDescription         string     `json:"metaDescription,omitempty"`
	Keywords                []string   `json:"keywords,omitempty"`
	IsPublished             bool       `json:"isPublished"`
	IsFeatured              bool       `json:"isFeatured"`
	PublishDate             *time.Time `json:"publishDate,omitempty"`
	ViewCount               int        `json:"viewCount"`
	LeadGenerationCount     int        `json:"leadGenerationCount"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// Summary is the listing view of a case study.
type Summary struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Slug               string     `json:"slug"`
	ClientName         string     `json:"clientName"`
	ClientLogoURL      string     `json:"clientLogoUrl,omitempty"`
	Industry           string     `json:"industry"`
	CompanySize        string     `json:"companySize"`
	ImplementationTime int        `json:"implementationTime"`
	CostSavings        *float64   `json:"costSavings,omitempty"`
	EfficiencyGain     *float64   `json:"efficiencyGain,omitempty"`
	ROIPercentage      *float64   `json:"roiPercentage,omitempty"`
	HeroImageURL       string     `json:"heroImageUrl,omitempty"`
	MetaDescription    string     `json:"metaDescription,omitempty"`
	IsFeatured         bool       `json:"isFeatured"`
	ViewCount          int        `json:"viewCount"`
	PublishDate        *time.Time `json:"publishDate,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// Stats aggregates the published case studies.
type Stats struct {
	TotalCaseStudies      int     `json:"totalCaseStudies"`
	TotalCostSavings      float64 `json:"totalCostSavings"`
	AvgImplementationTime float64 `json:"avgImplementationTime"`
	AvgROI                float64 `json:"avgRoi"`
	AvgEfficiencyGain     float64 `json:"avgEfficiencyGain"`
	IndustriesServed      int     `json:"industriesServed"`
	FeaturedCount         int     `json:"featuredCount"`
}

// Inquiry is a prospect asking about one case study.
type Inquiry struct {
	ID                 string    `json:"inquiryId"`
	CaseStudyID        string    `json:"caseStudyId"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Email              string    `json:"email"`
	Company            string    `json:"company,omitempty"`
	JobTitle           string    `json:"jobTitle,omitempty"`
	InquiryMessage     string    `json:"inquiryMessage,omitempty"`
	SimilarChallenge   bool      `json:"similarChallenge"`
	InterestedServices []string  `json:"interestedServices,omitempty"`
	ReferrerURL        string    `json:"referrerUrl,omitempty"`
	IPAddress          string    `json:"ipAddress,omitempty"`
	UserAgent          string    `json:"userAgent,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Benchmark is one industry_benchmarks row.
type Benchmark struct {
	ID                    string     `json:"id"`
	Industry              string     `json:"industry"`
	ProcessType           string     `json:"processType"`
	AvgImplementationTime int        `json:"avgImplementationTime"`
	AvgCostSavings        float64    `json:"avgCostSavings"`
	AvgEfficiencyGain     float64    `json:"avgEfficiencyGain"`
	AvgROI                float64    `json:"avgRoi"`
	SampleSize            int        `json:"sampleSize"`
	ConfidenceLevel       float64    `json:"confidenceLevel"`
	Notes                 string     `json:"notes,omitempty"`
	DataSources           []string   `json:"dataSources,omitempty"`
	LastUpdated           time.Time  `json:"lastUpdated"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

type scanner interface {
	Scan(dest ...interface{}) error
}

const detailColumns = `id, title, slug, client_name, client_logo_url, industry, company_size,
		challenge, solution, results, implementation_time,
		cost_savings, efficiency_gain, roi_percentage, error_reduction, time_savings,
		technologies_used, process_types, hero_image_url,
		client_testimonial, client_testimonial_author, client_testimonial_title,
		meta_description, keywords, is_published, is_featured, publish_date,
		view_count, lead_generation_count, created_at, updated_at`

func scanCaseStudy(row scanner) (*CaseStudy, error) {
	var (
		cs                                      CaseStudy
		logo, hero, testimonial, author         sql.NullString
		testimonialTitle, meta                  sql.NullString
		savings, efficiency, roi, errRed, saved sql.NullFloat64
		technologies, processes, keywords       []byte
		publishDate, updatedAt                  sql.NullTime
	)
	err := row.Scan(
		&cs.ID, &cs.Title, &cs.Slug, &cs.ClientName, &logo, &cs.Industry, &cs.CompanySize,
		&cs.Challenge, &cs.Solution, &cs.Results, &cs.ImplementationTime,
		&savings, &efficiency, &roi, &errRed, &saved,
		&technologies, &processes, &hero,
		&testimonial, &author, &testimonialTitle,
		&meta, &keywords, &cs.IsPublished, &cs.IsFeatured, &publishDate,
		&cs.ViewCount, &cs.LeadGenerationCount, &cs.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cs.ClientLogoURL = logo.String
	cs.HeroImageURL = hero.String
	cs.ClientTestimonial = testimonial.String
	cs.ClientTestimonialAuthor = author.String
	cs.ClientTestimonialTitle = testimonialTitle.String
	cs.MetaDescription = meta.String
	cs.CostSavings = floatOrNil(savings)
	cs.EfficiencyGain = floatOrNil(efficiency)
	cs.ROIPercentage = floatOrNil(roi)
	cs.ErrorReduction = floatOrNil(errRed)
	cs.TimeSavings = floatOrNil(saved)
	cs.PublishDate = timeOrNil(publishDate)
	cs.UpdatedAt = timeOrNil(updatedAt)

	for _, list := range []struct {
		raw []byte
		dst *[]string
	}{
		{technologies, &cs.TechnologiesUsed},
		{processes, &cs.ProcessTypes},
		{keywords, &cs.Keywords},
	} {
		if err := decodeList(list.raw, list.dst); err != nil {
			return nil, err
		}
	}
	return &cs, nil
}

const summaryColumns = `id, title, slug, client_name, client_logo_url, industry, company_size,
		implementation_time, cost_savings, efficiency_gain, roi_percentage,
		hero_image_url, meta_description, is_featured, view_count, publish_date, created_at`

func scanSummary(row scanner) (Summary, error) {
	var (
		s                        Summary
		logo, hero, meta         sql.NullString
		savings, efficiency, roi sql.NullFloat64
		publishDate              sql.NullTime
	)
	err := row.Scan(
		&s.ID, &s.Title, &s.Slug, &s.ClientName, &logo, &s.Industry, &s.CompanySize,
		&s.ImplementationTime, &savings, &efficiency, &roi,
		&hero, &meta, &s.IsFeatured, &s.ViewCount, &publishDate, &s.CreatedAt,
	)
	if err != nil {
		return Summary{}, err
	}
	s.ClientLogoURL = logo.String
	s.HeroImageURL = hero.String
	s.MetaDescription = meta.String
	s.CostSavings = floatOrNil(savings)
	s.EfficiencyGain = floatOrNil(efficiency)
	s.ROIPercentage = floatOrNil(roi)
	s.PublishDate = timeOrNil(publishDate)
	return s, nil
}

// Summary returns the listing view of cs.
func (cs *CaseStudy) Summary() Summary {
	return Summary{
		ID:                 cs.ID,
		Title:              cs.Title,
		Slug:               cs.Slug,
		ClientName:         cs.ClientName,
		ClientLogoURL:      cs.ClientLogoURL,
		Industry:           cs.Industry,
		CompanySize:        cs.CompanySize,
		ImplementationTime: cs.ImplementationTime,
		CostSavings:        cs.CostSavings,
		EfficiencyGain:     cs.EfficiencyGain,
		ROIPercentage:      cs.ROIPercentage,
		HeroImageURL:       cs.HeroImageURL,
		MetaDescription:    cs.MetaDescription,
		IsFeatured:         cs.IsFeatured,
		ViewCount:          cs.ViewCount,
		PublishDate:        cs.PublishDate,
		CreatedAt:          cs.CreatedAt,
	}
}

func floatOrNil(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func timeOrNil(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func decodeList(raw []byte, dst *[]string) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode list column: %w", err)
	}
	return nil
}
