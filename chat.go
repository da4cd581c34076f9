// File: concierge/chat.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"concierge/config"
	bookingRepo "concierge/database/repository/bookings"
	"concierge/models"
	"concierge/services/dialogue"
	ai "concierge/services/intelligence"
)

// runChat is a local stand-in for the Instagram channel: the same dialogue
// service, but with in-memory state and bookings and replies printed to the
// terminal. Nothing it does touches Mongo or Redis.
func runChat(userID string, catalog *models.HotelCatalog) {
	if userID == "" {
		userID = "cli_user"
	}

	svc := &dialogue.DefaultDialogueService{
		Language: ai.NewDefaultLanguageService(ai.NewGeminiClient(config.AppConfig.GeminiAPIKey), catalog),
		States:   ai.NewMemoryStateStore(),
		Bookings: bookingRepo.NewMemoryBookingRepo(),
		Catalog:  catalog,
	}

	hotelName := catalog.Name
	if hotelName == "" {
		hotelName = "our hotel"
	}
	fmt.Printf("Chatting with %s as %q. Type 'exit' or 'quit' to leave.\n\n", hotelName, userID)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit") {
			fmt.Println("Goodbye!")
			return
		}
		reply := svc.ProcessMessage(context.Background(), userID, line)
		fmt.Printf("Agent: %s\n\n", reply)
	}
}
