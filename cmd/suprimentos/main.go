package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/config"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/jobs"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/server"
	"github.com/LICASKJS/dashboardsuprimentos-2026/internal/util"
)

var (
	port    = flag.Int("port", 0, "porta do serviço (config.toml tem prioridade quando define port)")
	devMode = flag.Bool("dev", false, "modo de desenvolvimento")
	dataDir = flag.String("dataDir", "", "diretório base de dados (sobrepõe a configuração)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Dashboard de Suprimentos")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("falha ao carregar configuração, usando padrão: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// Parâmetros de linha de comando sobrepõem a configuração
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	baseDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Fatalf("falha ao criar o diretório de dados: %v", err)
	}
	fmt.Printf("Diretório de dados: %s\n", baseDir)

	srv := server.NewServer(cfg, baseDir)

	scheduler := jobs.NewScheduler(srv.Service(), cfg.Jobs)
	if err := scheduler.Start(); err != nil {
		log.Printf("falha ao iniciar os jobs agendados: %v", err)
	}
	defer scheduler.Stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("Serviço iniciando na porta %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("falha ao iniciar o serviço: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("Abrindo o navegador: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("Não foi possível abrir o navegador, acesse: %s\n", url)
		}
	} else {
		fmt.Printf("Modo de desenvolvimento: acesse %s\n", url)
	}

	fmt.Println("\nCtrl+C para encerrar...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nEncerrando o serviço...")
}
