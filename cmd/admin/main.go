package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"buildtobond/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}

	storageSvc := storage.NewStorageService(db, rdb)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: block <room_id> | unblock <room_id> | deactivate <room_id> | activate <room_id> | stats <user_id>")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "block", "unblock":
		roomID := requireArg("Usage: admin " + command + " <room_id>")
		if err := storageSvc.SetRoomBlocked(roomID, command == "block"); err != nil {
			log.Fatalf("failed to update room %s: %v", roomID, err)
		}
		fmt.Printf("Room %s %sed.\n", roomID, command)

	case "deactivate", "activate":
		roomID := requireArg("Usage: admin " + command + " <room_id>")
		if err := storageSvc.SetRoomActive(roomID, command == "activate"); err != nil {
			log.Fatalf("failed to update room %s: %v", roomID, err)
		}
		fmt.Printf("Room %s %sd.\n", roomID, command)

	case "stats":
		userID := requireArg("Usage: admin stats <user_id>")
		stats, err := storageSvc.GetBehaviourStats(userID)
		if err != nil {
			log.Fatalf("failed to read stats for %s: %v", userID, err)
		}
		initiations := stats["chat_initiations"]
		if initiations == "" {
			initiations = "0"
		}
		fmt.Printf("User %s\n", userID)
		fmt.Printf("  chat initiations: %s\n", initiations)

		sum, _ := strconv.Atoi(stats["chat_length_sum"])
		count, _ := strconv.Atoi(stats["chat_length_count"])
		if count > 0 {
			fmt.Printf("  avg chat length:  %.1f chars over %d messages\n", float64(sum)/float64(count), count)
		} else {
			fmt.Println("  avg chat length:  no text messages yet")
		}

	default:
		fmt.Printf("Unknown command %q\n", command)
		os.Exit(1)
	}
}

func requireArg(usage string) string {
	if len(os.Args) < 3 {
		fmt.Println(usage)
		os.Exit(1)
	}
	return os.Args[2]
}
