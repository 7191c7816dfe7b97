package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/velozity/opsboard/internal/bin"
	bindomain "github.com/velozity/opsboard/internal/bin/domain"
	"github.com/velozity/opsboard/internal/bizcal"
	"github.com/velozity/opsboard/internal/config"
	"github.com/velozity/opsboard/internal/export"
	"github.com/velozity/opsboard/internal/logger"
	"github.com/velozity/opsboard/internal/metrics"
	"github.com/velozity/opsboard/internal/plan"
	plandomain "github.com/velozity/opsboard/internal/plan/domain"
	"github.com/velozity/opsboard/internal/record"
	recorddomain "github.com/velozity/opsboard/internal/record/domain"
	"github.com/velozity/opsboard/internal/scanevents"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	scanevents.Module,
	bizcal.Module,
	record.Module,
	plan.Module,
	bin.Module,
	export.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(log))
	r.Use(metrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, log *zap.Logger, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, log, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine    *gin.Engine
	cfg       config.Config
	log       *zap.Logger
	cal       *bizcal.Calendar
	recordSvc recorddomain.Service
	planSvc   plandomain.Service
	binSvc    bindomain.Service
	exportSvc *export.Service
	pulses    *scanevents.Hub
}

type ServerParams struct {
	fx.In

	Gin       *gin.Engine
	Cfg       config.Config
	Log       *zap.Logger
	Cal       *bizcal.Calendar
	RecordSvc recorddomain.Service
	PlanSvc   plandomain.Service
	BinSvc    bindomain.Service
	ExportSvc *export.Service
	Pulses    *scanevents.Hub `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:    p.Gin,
		cfg:       p.Cfg,
		log:       p.Log.Named("http.server"),
		cal:       p.Cal,
		recordSvc: p.RecordSvc,
		planSvc:   p.PlanSvc,
		binSvc:    p.BinSvc,
		exportSvc: p.ExportSvc,
		pulses:    p.Pulses,
	}

	// Every route is reachable both at the root and under /api. The /api
	// prefix is a pure alias kept for clients behind path-rewriting proxies.
	svc.registerRoutes(svc.engine.Group("/"))
	svc.registerRoutes(svc.engine.Group("/api"))

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes(g *gin.RouterGroup) {
	// -------- Intake records --------
	g.PATCH("/records/:id", s.PatchRecord)
	g.POST("/records", s.CreateRecord)
	g.POST("/records/import", s.ImportRecords)
	g.GET("/records", s.ListRecords)
	g.DELETE("/records", s.DeleteRecord)
	g.POST("/records/delete", s.BatchDeleteRecords)

	// -------- Exports --------
	g.GET("/export/xlsx", s.ExportDaySheet)

	// -------- Live events --------
	g.GET("/events/scan", s.StreamScanEvents)

	// -------- Weekly plan --------
	// The /week variants take the week via the weekStart or ws query alias;
	// both forms default to the current business week.
	g.GET("/plan/weeks", s.ListPlanWeeks)
	g.GET("/plan/weeks/:week", s.GetPlanWeek)
	g.PUT("/plan/weeks/:week", s.PutPlanWeek)
	g.POST("/plan/weeks/:week/zero", s.ZeroPlanWeek)
	g.GET("/plan/week", s.GetPlanWeek)
	g.PUT("/plan/week", s.PutPlanWeek)

	// -------- Bin summary --------
	g.GET("/bins/weeks/:week", s.GetBinWeek)
	g.PUT("/bins/weeks/:week", s.PutBinWeek)
	g.GET("/bins/week", s.GetBinWeek)
	g.PUT("/bins/week", s.PutBinWeek)
}
