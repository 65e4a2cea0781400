package cli

import (
	"fmt"
	"strconv"
	"strings"

	"sanctuary/models"
	"sanctuary/version"

	"github.com/chzyer/readline"
)

// Console is the interactive admin console (HTTP client mode)
type Console struct {
	rl       *readline.Instance
	running  bool
	client   *Client
	loggedIn bool
}

// New creates a new console instance connected to the given server
func New(serverURL string) (*Console, error) {
	client := NewClient(serverURL)

	// Test connectivity
	if err := client.HealthCheck(); err != nil {
		return nil, fmt.Errorf("cannot connect to server: %v", err)
	}

	// Create readline instance; ignore Ctrl+C
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %v", err)
	}

	return &Console{
		rl:      rl,
		running: true,
		client:  client,
	}, nil
}

// Start runs the console loop
func (c *Console) Start() {
	defer c.rl.Close()
	c.printWelcome()

	for c.running {
		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				// Ctrl+C pressed
				fmt.Println("\n⚠ Ctrl+C detected. Please use 'exit' or 'quit' command to exit gracefully.")
				continue
			}
			// EOF or other error; exit
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		c.handleCommand(input)
	}
}

// printWelcome prints initial banner
func (c *Console) printWelcome() {
	PrintBanner("Sanctuary - Admin Console")
	fmt.Printf("\nConnected to: %s\n", c.client.baseURL)
	fmt.Println("Type 'help' for available commands. Most commands require 'login' first.")
}

// handleCommand routes user commands
func (c *Console) handleCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "h", "?":
		c.showHelp()
	case "login":
		c.handleLogin()
	case "logout":
		c.handleLogout()
	case "link", "links":
		c.handleLinkCommand(args)
	case "category", "categories", "cat":
		c.listCategories()
	case "persona", "personas":
		c.handlePersonaCommand(args)
	case "session", "sessions":
		c.handleSessionCommand(args)
	case "chat":
		if len(args) < 1 {
			fmt.Println("Usage: chat <session_id>")
			return
		}
		c.enterChat(args[0])
	case "announcement", "ann":
		c.handleAnnouncementCommand(args)
	case "health":
		c.showHealth()
	case "version", "v":
		fmt.Printf("Sanctuary %s\n", version.GetFullVersion())
	case "metrics":
		c.showMetrics()
	case "clear":
		c.clearScreen()
	case "exit", "quit", "q":
		fmt.Println("\nGoodbye!")
		c.running = false
	default:
		fmt.Printf("Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}
}

// showHelp prints available commands
func (c *Console) showHelp() {
	fmt.Println()
	PrintBanner("Available Commands")
	fmt.Println()

	commands := [][]string{
		{"help, h, ?", "Show this help message"},
		{"login", "Log in as admin (interactive)"},
		{"logout", "Log out"},
		{"", ""},
		{"NAVIGATION WALL:", ""},
		{"link list", "List links grouped by category"},
		{"link add", "Add a new link (interactive)"},
		{"link delete <id>", "Delete a link by ID"},
		{"category list", "List all categories"},
		{"", ""},
		{"AI PERSONAS:", ""},
		{"persona list", "List all personas"},
		{"persona add", "Add a new persona (interactive)"},
		{"persona delete <id>", "Delete a persona by ID"},
		{"", ""},
		{"GROUP CHAT:", ""},
		{"session list", "List chat sessions"},
		{"session add", "Create a session (interactive)"},
		{"session delete <id>", "Delete a session"},
		{"session show <id>", "Show session transcript"},
		{"chat <session_id>", "Enter interactive chat in a session"},
		{"", ""},
		{"SITE:", ""},
		{"announcement", "Show current announcement"},
		{"announcement set", "Replace the announcement (interactive)"},
		{"metrics", "Show server runtime counters"},
		{"", ""},
		{"SYSTEM:", ""},
		{"health", "Check server health"},
		{"version, v", "Show CLI version"},
		{"clear", "Clear screen"},
		{"exit, quit, q", "Exit the program"},
	}

	for _, cmd := range commands {
		if len(cmd) == 2 && cmd[0] != "" {
			fmt.Printf("  %-26s %s\n", cmd[0], cmd[1])
		} else {
			fmt.Println()
		}
	}
}

// handleLogin logs in interactively and keeps the session cookie
func (c *Console) handleLogin() {
	username, cancelled := c.readInputWithCancel("Username", "admin")
	if cancelled {
		fmt.Println("\n❌ Operation cancelled")
		return
	}

	password, cancelled := c.readInputPasswordWithCancel("Password")
	if cancelled {
		fmt.Println("\n❌ Operation cancelled")
		return
	}

	if err := c.client.Login(username, password); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}

	c.loggedIn = true
	fmt.Println("✓ Logged in")
}

// handleLogout drops the session
func (c *Console) handleLogout() {
	if err := c.client.Logout(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	c.loggedIn = false
	fmt.Println("Logged out")
}

// handleLinkCommand handles link subcommands
func (c *Console) handleLinkCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: link <list|add|delete> [args]")
		return
	}

	switch args[0] {
	case "list", "ls":
		c.listLinks()
	case "add", "create":
		c.addLink()
	case "delete", "del", "rm":
		if len(args) < 2 {
			fmt.Println("Usage: link delete <id>")
			return
		}
		c.deleteLink(args[1])
	default:
		fmt.Printf("Unknown link command: %s\n", args[0])
	}
}

// listLinks lists all links grouped by category
func (c *Console) listLinks() {
	groups, err := c.client.ListLinks()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	total := 0
	for _, g := range groups {
		total += len(g.Links)
	}

	if total == 0 {
		fmt.Println("No links yet.")
		return
	}

	fmt.Println()
	PrintBanner(fmt.Sprintf("Total Links: %d", total))

	for _, g := range groups {
		fmt.Printf("\n[%s]\n", g.Category.Name)
		fmt.Printf("%-4s %-24s %-40s %-4s\n", "ID", "Title", "URL", "Rec")
		fmt.Println(strings.Repeat("-", 76))
		for _, l := range g.Links {
			rec := ""
			if l.IsRecommended {
				rec = "★"
			}
			fmt.Printf("%-4d %-24s %-40s %-4s\n",
				l.ID,
				truncate(l.Title, 24),
				truncate(l.URL, 40),
				rec,
			)
		}
	}
}

// addLink adds a link interactively
func (c *Console) addLink() {
	fmt.Println()
	PrintBanner("Add New Link (Interactive)")
	fmt.Println("\nPress Ctrl+C anytime to cancel")

	link := models.LinkCreate{}

	for {
		input, cancelled := c.readInputWithCancel("Title (required)", "")
		if cancelled {
			fmt.Println("\n❌ Operation cancelled")
			return
		}
		if input == "" {
			fmt.Println("❌ Title cannot be empty.")
			continue
		}
		link.Title = input
		break
	}

	for {
		input, cancelled := c.readInputWithCancel("URL (required)", "")
		if cancelled {
			fmt.Println("\n❌ Operation cancelled")
			return
		}
		if input == "" {
			fmt.Println("❌ URL cannot be empty.")
			continue
		}
		link.URL = input
		break
	}

	input, cancelled := c.readInputWithCancel("Category", models.DefaultCategory)
	if cancelled {
		fmt.Println("\n❌ Operation cancelled")
		return
	}
	link.Category = input

	input, cancelled = c.readInputWithCancel("Description (optional)", "")
	if cancelled {
		fmt.Println("\n❌ Operation cancelled")
		return
	}
	link.Description = input

	input, cancelled = c.readInputWithCancel("Recommended? (y/N)", "n")
	if cancelled {
		fmt.Println("\n❌ Operation cancelled")
		return
	}
	link.IsRecommended = strings.EqualFold(input, "y") || strings.EqualFold(input, "yes")

	created, err := c.client.CreateLink(link)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("✓ Link created with ID %d\n", created.ID)
}

// deleteLink deletes a link by ID string
func (c *Console) deleteLink(idStr string) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		fmt.Printf("Invalid ID: %s\n", idStr)
		return
	}

	if err := c.client.DeleteLink(uint(id)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("✓ Link %d deleted\n", id)
}

// listCategories lists all categories
func (c *Console) listCategories() {
	categories, err := c.client.ListCategories()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if len(categories) == 0 {
		fmt.Println("No categories yet.")
		return
	}

	fmt.Printf("\n%-4s %-30s %-6s\n", "ID", "Name", "Order")
	fmt.Println(strings.Repeat("-", 44))
	for _, cat := range categories {
		fmt.Printf("%-4d %-30s %-6d\n", cat.ID, truncate(cat.Name, 30), cat.SortOrder)
	}
}

// handlePersonaCommand handles persona subcommands
func (c *Console) handlePersonaCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: persona <list|add|delete> [args]")
		return
	}

	switch args[0] {
	case "list", "ls":
		c.listPersonas()
	case "add", "create":
		c.addPersona()
	case "delete", "del", "rm":
		if len(args) < 2 {
			fmt.Println("Usage: persona delete <id>")
			return
		}
		c.deletePersona(args[1])
	default:
		fmt.Printf("Unknown persona command: %s\n", args[0])
	}
}

// listPersonas lists all AI personas
func (c *Console) listPersonas() {
	characters, err := c.client.ListCharacters()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if len(characters) == 0 {
		fmt.Println("No personas configured.")
		return
	}

	fmt.Println()
	PrintBanner(fmt.Sprintf("Total Personas: %d", len(characters)))
	fmt.Println()

	fmt.Printf("%-4s %-20s %-40s %-7s\n", "ID", "Name", "Description", "Public")
	fmt.Println(strings.Repeat("-", 76))
	for _, ch := range characters {
		public := "no"
		if ch.IsPublic {
			public = "yes"
		}
		fmt.Printf("%-4d %-20s %-40s %-7s\n",
			ch.ID,
			truncate(ch.Name, 20),
			truncate(ch.Description, 40),
			public,
		)
	}
}

// addPersona adds a persona interactively
func (c *Console) addPersona() {
	fmt.Println()
	PrintBanner("Add New Persona (Interactive)")
	fmt.Println("\nPress Ctrl+C anytime to cancel")

	persona := models.AICharacterCreate{}

	for {
		input, cancelled := c.readInputWithCancel("Name (required)", "")
		if cancelled {
			fmt.Println("\n❌ Operation cancelled")
			return
		}
		if input == "" {
			fmt.Println("❌ Name cannot be empty.")
			continue
		}
		persona.Name = input
		break
	}

	input, cancelled := c.readInputWithCancel("Description (optional)", "")
	if cancelled {
		fmt.Println("\n❌ Operation cancelled")
		return
	}
	persona.Description = input

	for {
		input, cancelled := c.readInputWithCancel("System prompt (required)", "")
		if cancelled {
			fmt.Println("\n❌ Operation cancelled")
			return
		}
		if input == "" {
			fmt.Println("❌ System prompt cannot be empty.")
			continue
		}
		persona.SystemPrompt = input
		break
	}

	created, err := c.client.CreateCharacter(persona)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("✓ Persona '%s' created with ID %d\n", created.Name, created.ID)
}

// deletePersona deletes a persona by ID string
func (c *Console) deletePersona(idStr string) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		fmt.Printf("Invalid ID: %s\n", idStr)
		return
	}

	if err := c.client.DeleteCharacter(uint(id)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("✓ Persona %d deleted\n", id)
}

// handleSessionCommand handles session subcommands
func (c *Console) handleSessionCommand(args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: session <list|add|delete|show> [args]")
		return
	}

	switch args[0] {
	case "list", "ls":
		c.listSessions()
	case "add", "create":
		c.addSession()
	case "delete", "del", "rm":
		if len(args) < 2 {
			fmt.Println("Usage: session delete <id>")
			return
		}
		c.deleteSession(args[1])
	case "show", "get":
		if len(args) < 2 {
			fmt.Println("Usage: session show <id>")
			return
		}
		c.showSession(args[1])
	default:
		fmt.Printf("Unknown session command: %s\n", args[0])
	}
}

// listSessions lists chat sessions
func (c *Console) listSessions() {
	sessions, err := c.client.ListSessions()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions yet.")
		return
	}

	fmt.Printf("\n%-4s %-30s %-40s\n", "ID", "Name", "Participants")
	fmt.Println(strings.Repeat("-", 76))
	for _, s := range sessions {
		names := make([]string, 0, len(s.Participants))
		for _, p := range s.Participants {
			names = append(names, p.Name)
		}
		fmt.Printf("%-4d %-30s %-40s\n",
			s.ID,
			truncate(s.Name, 30),
			truncate(strings.Join(names, ", "), 40),
		)
	}
}

// addSession creates a session interactively
func (c *Console) addSession() {
	fmt.Println()
	PrintBanner("Create Chat Session (Interactive)")
	fmt.Println("\nPress Ctrl+C anytime to cancel")

	c.listPersonas()

	req := models.AIChatSessionCreate{}

	for {
		input, cancelled := c.readInputWithCancel("Participant IDs (comma-separated, required)", "")
		if cancelled {
			fmt.Println("\n❌ Operation cancelled")
			return
		}

		ids, err := parseIDList(input)
		if err != nil || len(ids) == 0 {
			fmt.Println("❌ Enter at least one numeric persona ID, e.g. 1,3")
			continue
		}
		req.ParticipantIDs = ids
		break
	}

	input, cancelled := c.readInputWithCancel("Session name (optional, auto-generated if empty)", "")
	if cancelled {
		fmt.Println("\n❌ Operation cancelled")
		return
	}
	req.Name = input

	created, err := c.client.CreateSession(req)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("✓ Session '%s' created with ID %d\n", created.Name, created.ID)
}

// deleteSession deletes a session by ID string
func (c *Console) deleteSession(idStr string) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		fmt.Printf("Invalid ID: %s\n", idStr)
		return
	}

	if err := c.client.DeleteSession(uint(id)); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("✓ Session %d deleted\n", id)
}

// showSession prints a session transcript
func (c *Console) showSession(idStr string) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		fmt.Printf("Invalid ID: %s\n", idStr)
		return
	}

	messages, err := c.client.ListSessionMessages(uint(id))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	if len(messages) == 0 {
		fmt.Println("No messages in this session.")
		return
	}

	fmt.Println()
	for _, m := range messages {
		actor := "You"
		if m.Role == models.RoleAssistant {
			actor = fmt.Sprintf("AI #%s", formatCharacterID(m.CharacterID))
		}
		fmt.Printf("[%s] %s:\n%s\n\n", m.CreatedAt.Format("2006-01-02 15:04"), actor, m.Content)
	}
}

// enterChat runs the interactive chat loop inside a session
func (c *Console) enterChat(idStr string) {
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		fmt.Printf("Invalid ID: %s\n", idStr)
		return
	}

	fmt.Println()
	PrintBanner(fmt.Sprintf("Chat - Session %d", id))
	fmt.Println("\nType your message. Empty line or Ctrl+C returns to the console.")

	for {
		input, cancelled := c.readInputWithCancel("You", "")
		if cancelled || input == "" {
			fmt.Println("Leaving chat.")
			return
		}

		result, err := c.client.SendMessage(uint(id), input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		for _, turn := range result.Turns {
			if !turn.Success {
				fmt.Printf("\n[%s failed: %s]\n", turn.CharacterName, turn.Error)
				continue
			}
			fmt.Printf("\n%s:\n%s\n", turn.CharacterName, turn.Reply.Content)
		}
		fmt.Println()
	}
}

// handleAnnouncementCommand shows or replaces the announcement
func (c *Console) handleAnnouncementCommand(args []string) {
	if len(args) > 0 && args[0] == "set" {
		input, cancelled := c.readInputWithCancel("New announcement (empty clears it)", "")
		if cancelled {
			fmt.Println("\n❌ Operation cancelled")
			return
		}
		if err := c.client.SetAnnouncement(input); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("✓ Announcement updated")
		return
	}

	text, err := c.client.GetAnnouncement()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if text == "" {
		fmt.Println("No announcement set.")
		return
	}
	fmt.Printf("\n%s\n", text)
}

// showHealth pings the server's health endpoint
func (c *Console) showHealth() {
	if err := c.client.HealthCheck(); err != nil {
		fmt.Printf("✗ %v\n", err)
		return
	}
	fmt.Println("✓ Server is healthy")
}

// showMetrics prints server runtime counters
func (c *Console) showMetrics() {
	metrics, err := c.client.GetMetrics()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println()
	for k, v := range metrics {
		fmt.Printf("  %-28s %v\n", k, v)
	}
}

// clearScreen clears terminal
func (c *Console) clearScreen() {
	fmt.Print("\033[H\033[2J")
}

// readInputWithCancel reads one line with an optional default, Ctrl+C cancels
func (c *Console) readInputWithCancel(prompt, defaultValue string) (string, bool) {
	if defaultValue != "" {
		c.rl.SetPrompt(fmt.Sprintf("%s [%s]: ", prompt, defaultValue))
	} else {
		c.rl.SetPrompt(fmt.Sprintf("%s: ", prompt))
	}

	line, err := c.rl.Readline()
	c.rl.SetPrompt("> ") // Restore default prompt

	if err != nil {
		if err == readline.ErrInterrupt {
			// Ctrl+C pressed, cancel
			return "", true
		}
		// Other errors: use default
		return defaultValue, false
	}

	input := strings.TrimSpace(line)
	if input == "" && defaultValue != "" {
		return defaultValue, false
	}
	return input, false
}

// readInputPasswordWithCancel reads a password without echo and supports cancel
func (c *Console) readInputPasswordWithCancel(prompt string) (string, bool) {
	c.rl.SetPrompt(fmt.Sprintf("%s: ", prompt))
	line, err := c.rl.ReadPassword("")
	c.rl.SetPrompt("> ") // Restore default prompt

	if err != nil {
		if err == readline.ErrInterrupt {
			// Ctrl+C pressed, cancel
			return "", true
		}
		return "", false
	}
	return string(line), false
}

// parseIDList parses "1,3,5" into a slice of IDs
func parseIDList(input string) ([]uint, error) {
	parts := strings.Split(input, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// formatCharacterID renders a nullable character reference
func formatCharacterID(id *uint) string {
	if id == nil {
		return "?"
	}
	return strconv.FormatUint(uint64(*id), 10)
}

// truncate shortens a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
