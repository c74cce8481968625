package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"k8s.io/klog/v2"

	"github.com/brokerdesk/backend/config"
	"github.com/brokerdesk/backend/internal/eventbus"
	"github.com/brokerdesk/backend/internal/handler"
	"github.com/brokerdesk/backend/internal/pkg/database"
	"github.com/brokerdesk/backend/internal/pkg/storage"
	"github.com/brokerdesk/backend/internal/repository"
	"github.com/brokerdesk/backend/internal/router"
	"github.com/brokerdesk/backend/internal/service"
	"github.com/brokerdesk/backend/internal/service/suggestion"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if cfg.Database.Type == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
	}

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	store, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// 仓储
	tenantRepo := repository.NewTenantRepository(db)
	planRepo := repository.NewPlanRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	relationshipRepo := repository.NewRelationshipRepository(db)
	contractRepo := repository.NewContractRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)

	// 事件总线与审计订阅
	bus := eventbus.NewInquiryEventBus()
	service.RegisterInquiryAudit(bus)

	// 服务
	tenantService := service.NewTenantService(tenantRepo)
	planService := service.NewPlanService(planRepo)
	caseService := service.NewCaseService(caseRepo)
	inquiryService := service.NewInquiryService(inquiryRepo, customerRepo, interactionRepo, bus)
	reportService := service.NewReportService(inquiryRepo, planRepo)
	questionService := service.NewQuestionService(questionRepo)
	customerService := service.NewCustomerService(customerRepo, interactionRepo, relationshipRepo)
	contractService := service.NewContractService(contractRepo, customerRepo, store)
	authService := service.NewAuthService(tenantRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	assessmentService := service.NewAssessmentService(questionRepo)
	// 评估完成后服务端只记录摘要，答案随响应交给前端预填预约表单
	assessmentService.SetOnComplete(func(tenantID string, answers map[string]string) {
		klog.V(6).Infof("评估完成: tenantID=%s, 共 %d 题", tenantID, len(answers))
	})

	suggestionProvider := suggestion.Provider(suggestion.NewStaticProvider())
	if cfg.Suggestion.Endpoint != "" {
		suggestionProvider = suggestion.NewFallbackProvider(
			suggestion.NewRemoteProvider(cfg.Suggestion.Endpoint, cfg.Suggestion.Timeout),
			suggestion.NewStaticProvider(),
		)
	}

	r := router.Setup(
		cfg,
		authService,
		handler.NewViewHandler(tenantService, planService, caseService, testimonialRepo, knowledgeRepo),
		handler.NewAssessmentHandler(assessmentService),
		handler.NewInquiryHandler(inquiryService, reportService),
		handler.NewAuthHandler(authService),
		handler.NewPlanHandler(planService),
		handler.NewCaseHandler(caseService),
		handler.NewQuestionHandler(questionService),
		handler.NewCustomerHandler(customerService),
		handler.NewContractHandler(contractService),
		handler.NewSuggestionHandler(suggestionProvider),
	)

	showBootInfo(cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		klog.Fatalf("Failed to start server: %v", err)
	}
}

func showBootInfo(port string) {
	color.Green("经纪人工作台后端启动成功")
	fmt.Printf("%s  ", color.GreenString("➜"))
	fmt.Printf("%s    ", color.New(color.Bold).Sprint("Local:"))
	fmt.Printf("%s\n", color.MagentaString("http://localhost:%s/", port))
}
