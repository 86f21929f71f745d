// 管理命令：初始化 / 销毁持久化 schema。
//
//	admin init      建表（AutoMigrate）
//	admin drop      删表，交互式确认后才执行
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-account-portal/internal/core/config"
	"go-account-portal/internal/core/database"
	"go-account-portal/internal/core/logger"
	"go-account-portal/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: admin <init|drop>")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)

	switch os.Args[1] {
	case "init":
		if err := db.AutoMigrate(&domain.User{}); err != nil {
			log.Fatal("init schema failed", zap.Error(err))
		}
		fmt.Println("Database initialized.")
	case "drop":
		if !confirm("Are you sure? (y/n): ") {
			fmt.Println("Aborted.")
			return
		}
		if err := db.Migrator().DropTable(&domain.User{}); err != nil {
			log.Fatal("drop schema failed", zap.Error(err))
		}
		fmt.Println("Database dropped.")
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		os.Exit(2)
	}
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
