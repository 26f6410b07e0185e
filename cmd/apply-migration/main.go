package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"fleetlink-report/internal/config"
	"fleetlink-report/internal/database"
)

// 按文件名顺序执行 migrations/ 下的 .sql 文件
// 用法: apply-migration [migrations_dir]（默认 ./migrations）
func main() {
	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil || len(files) == 0 {
		log.Fatalf("No migration files found in %s", dir)
	}
	sort.Strings(files)

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	for _, file := range files {
		sqlContent, err := os.ReadFile(file)
		if err != nil {
			log.Fatalf("Failed to read migration file %s: %v", file, err)
		}

		fmt.Printf("Applying %s...\n", file)
		if _, err := db.Exec(string(sqlContent)); err != nil {
			log.Fatalf("Migration %s failed: %v", file, err)
		}
	}

	fmt.Println("All migrations applied")
}
