// Package workers lists every job worker the manager can run and how to
// build its handler from the shared dependencies.
package workers

import (
	"database/sql"
	"time"

	"consultancy-workers/internal/casestudy"
	"consultancy-workers/internal/common/config"
	"consultancy-workers/internal/common/logger"
	"consultancy-workers/internal/common/notify"
	"consultancy-workers/internal/common/observability"
	"consultancy-workers/internal/common/ratelimit"
	"consultancy-workers/internal/leadscore"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	css "consultancy-workers/internal/workers/casestudy/case-study-stats"
	ccsi "consultancy-workers/internal/workers/casestudy/create-case-study-inquiry"
	gcs "consultancy-workers/internal/workers/casestudy/get-case-study"
	gfcs "consultancy-workers/internal/workers/casestudy/get-featured-case-studies"
	gib "consultancy-workers/internal/workers/casestudy/get-industry-benchmarks"
	gscs "consultancy-workers/internal/workers/casestudy/get-similar-case-studies"
	ics "consultancy-workers/internal/workers/casestudy/index-case-study"
	scs "consultancy-workers/internal/workers/casestudy/search-case-studies"

	gss "consultancy-workers/internal/workers/contact/get-submission-status"
	lcs "consultancy-workers/internal/workers/contact/list-contact-submissions"
	ns "consultancy-workers/internal/workers/contact/notify-sales"
	scst "consultancy-workers/internal/workers/contact/save-contact-step"
	sl "consultancy-workers/internal/workers/contact/score-lead"
	swe "consultancy-workers/internal/workers/contact/send-welcome-email"
	sc "consultancy-workers/internal/workers/contact/submit-contact"

	car "consultancy-workers/internal/workers/roi/calculate-advanced-roi"
	cr "consultancy-workers/internal/workers/roi/calculate-roi"
	crr "consultancy-workers/internal/workers/roi/create-roi-record"
	lrc "consultancy-workers/internal/workers/roi/list-roi-calculations"
	qre "consultancy-workers/internal/workers/roi/quick-roi-estimate"
	rrf "consultancy-workers/internal/workers/roi/request-roi-follow-up"
	srr "consultancy-workers/internal/workers/roi/send-roi-report"
)

// Categories group the task types in the activity registry.
const (
	CategoryROI       = "roi"
	CategoryContact   = "contact"
	CategoryCaseStudy = "casestudy"
)

// Deps are the shared clients handed to the handler builders. Any of them
// may be nil in tests; handlers only touch what they use.
type Deps struct {
	Config        *config.Config
	DB            *sql.DB
	Redis         redis.Cmdable
	Searcher      *casestudy.Searcher
	Limiter       *ratelimit.Limiter
	Notifier      *notify.Notifier
	Observability *observability.Observability
	Logger        logger.Logger
}

// Definition describes one worker. Build receives the per-worker timeout
// from the workers section of the config.
type Definition struct {
	TaskType    string
	Category    string
	Description string
	Build       func(d *Deps, timeout time.Duration) worker.JobHandler
}

func (d *Deps) threshold() int {
	if d.Config == nil || d.Config.LeadScoring.QualificationThreshold == 0 {
		return leadscore.DefaultQualificationThreshold
	}
	return d.Config.LeadScoring.QualificationThreshold
}

func (d *Deps) ttl(ms int, fallback time.Duration) time.Duration {
	if d.Config == nil || ms <= 0 {
		return fallback
	}
	return config.GetDuration(ms)
}

func (d *Deps) cacheTTLs() config.CacheConfig {
	if d.Config == nil {
		return config.CacheConfig{}
	}
	return d.Config.Cache
}

// Catalog returns every worker definition, grouped by category.
func Catalog() []Definition {
	return []Definition{
		// ROI
		{cr.TaskType, CategoryROI, "Runs the basic ROI calculation for the website calculator", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return cr.NewHandler(&cr.Config{Timeout: timeout}, d.Observability, d.Logger).Handle
		}},
		{car.TaskType, CategoryROI, "Runs the multi-year ROI projection with risk adjustment", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return car.NewHandler(&car.Config{Timeout: timeout}, d.Observability, d.Logger).Handle
		}},
		{qre.TaskType, CategoryROI, "Returns the rate limited quick savings estimate", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return qre.NewHandler(&qre.Config{Timeout: timeout}, d.Observability, d.Limiter, d.Logger).Handle
		}},
		{crr.TaskType, CategoryROI, "Persists a calculation with its contact details", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return crr.NewHandler(&crr.Config{Timeout: timeout}, d.DB, d.Logger).Handle
		}},
		{srr.TaskType, CategoryROI, "Emails the ROI report and records the delivery", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return srr.NewHandler(&srr.Config{Timeout: timeout}, d.DB, d.Notifier, d.Logger).Handle
		}},
		{rrf.TaskType, CategoryROI, "Flags a stored calculation for sales follow-up", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return rrf.NewHandler(&rrf.Config{Timeout: timeout}, d.DB, d.Logger).Handle
		}},
		{lrc.TaskType, CategoryROI, "Lists stored calculations for the admin view", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return lrc.NewHandler(&lrc.Config{Timeout: timeout}, d.DB, d.Logger).Handle
		}},

		// Contact
		{sc.TaskType, CategoryContact, "Accepts a complete contact form and scores the lead", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return sc.NewHandler(&sc.Config{Timeout: timeout, QualificationThreshold: d.threshold()}, d.DB, d.Limiter, d.Logger).Handle
		}},
		{scst.TaskType, CategoryContact, "Saves one step of the progressive contact form", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return scst.NewHandler(&scst.Config{Timeout: timeout, QualificationThreshold: d.threshold()}, d.DB, d.Limiter, d.Logger).Handle
		}},
		{sl.TaskType, CategoryContact, "Scores a lead without persisting it", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return sl.NewHandler(&sl.Config{Timeout: timeout, QualificationThreshold: d.threshold()}, d.Logger).Handle
		}},
		{ns.TaskType, CategoryContact, "Notifies the sales inbox and lead topic about a submission", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return ns.NewHandler(&ns.Config{Timeout: timeout}, d.Notifier, d.Logger).Handle
		}},
		{swe.TaskType, CategoryContact, "Sends the welcome email to a new contact", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return swe.NewHandler(&swe.Config{Timeout: timeout}, d.Notifier, d.Logger).Handle
		}},
		{gss.TaskType, CategoryContact, "Reports the progress of a contact submission", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return gss.NewHandler(&gss.Config{Timeout: timeout}, d.DB, d.Logger).Handle
		}},
		{lcs.TaskType, CategoryContact, "Lists contact submissions for the admin view", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return lcs.NewHandler(&lcs.Config{Timeout: timeout}, d.DB, d.Logger).Handle
		}},

		// Case studies
		{scs.TaskType, CategoryCaseStudy, "Full-text search over published case studies", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return scs.NewHandler(&scs.Config{Timeout: timeout}, d.Searcher, d.Logger).Handle
		}},
		{gfcs.TaskType, CategoryCaseStudy, "Returns the cached featured case studies", func(d *Deps, timeout time.Duration) worker.JobHandler {
			cfg := &gfcs.Config{Timeout: timeout, CacheTTL: d.ttl(d.cacheTTLs().FeaturedTTL, 5*time.Minute)}
			return gfcs.NewHandler(cfg, d.DB, d.Redis, d.Logger).Handle
		}},
		{gcs.TaskType, CategoryCaseStudy, "Loads a case study by slug and counts the view", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return gcs.NewHandler(&gcs.Config{Timeout: timeout}, d.DB, d.Logger).Handle
		}},
		{css.TaskType, CategoryCaseStudy, "Returns the cached aggregate case study statistics", func(d *Deps, timeout time.Duration) worker.JobHandler {
			cfg := &css.Config{Timeout: timeout, CacheTTL: d.ttl(d.cacheTTLs().StatsTTL, 10*time.Minute)}
			return css.NewHandler(cfg, d.DB, d.Redis, d.Logger).Handle
		}},
		{ccsi.TaskType, CategoryCaseStudy, "Records an inquiry against a case study", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return ccsi.NewHandler(&ccsi.Config{Timeout: timeout}, d.DB, d.Limiter, d.Logger).Handle
		}},
		{gib.TaskType, CategoryCaseStudy, "Lists industry benchmarks by industry and process type", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return gib.NewHandler(&gib.Config{Timeout: timeout}, d.DB, d.Logger).Handle
		}},
		{gscs.TaskType, CategoryCaseStudy, "Finds case studies sharing industry or company size", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return gscs.NewHandler(&gscs.Config{Timeout: timeout}, d.DB, d.Logger).Handle
		}},
		{ics.TaskType, CategoryCaseStudy, "Pushes a case study into the search index", func(d *Deps, timeout time.Duration) worker.JobHandler {
			return ics.NewHandler(&ics.Config{Timeout: timeout}, d.DB, d.Searcher, d.Logger).Handle
		}},
	}
}

// Registrar is the part of camunda.Registry used to open workers.
type Registrar interface {
	Enabled(taskType string) bool
	Register(taskType string, handler worker.JobHandler) bool
}

// RegisterAll builds and registers every enabled worker and returns how
// many were opened.
func RegisterAll(r Registrar, d *Deps) int {
	started := 0
	for _, def := range Catalog() {
		if !r.Enabled(def.TaskType) {
			continue
		}
		timeout := 30 * time.Second
		if d.Config != nil {
			timeout = config.GetDuration(config.GetWorkerConfig(d.Config, def.TaskType).Timeout)
		}
		if r.Register(def.TaskType, def.Build(d, timeout)) {
			started++
		}
	}
	return started
}
