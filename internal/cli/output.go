package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case AuthResult:
		o.printAuthResult(v)
	case ValidateResult:
		o.printValidateResult(v)
	case PlayerDataResult:
		o.printPlayerData(v.PlayerData)
	case UpdateResult:
		fmt.Println(v.Message)
		o.printPlayerData(v.PlayerData)
	case MessageResult:
		fmt.Println(v.Message)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printAuthResult(r AuthResult) {
	fmt.Println(r.Message)
	fmt.Printf("User ID:  %s\n", r.UserID)
	fmt.Printf("Username: %s\n", r.Username)
	fmt.Printf("Token:    %s\n", r.AuthToken)
	o.printPlayerData(r.PlayerData)
}

func (o *Output) printValidateResult(r ValidateResult) {
	fmt.Printf("Valid: %t\n", r.Valid)
	if !r.Valid {
		fmt.Println(r.Message)
		return
	}
	fmt.Printf("User ID:  %s\n", r.UserID)
	fmt.Printf("Username: %s\n", r.Username)
	o.printPlayerData(r.PlayerData)
}

func (o *Output) printPlayerData(p PlayerData) {
	if p.UserID == "" {
		return
	}
	fmt.Printf("Level: %d  Money: %d  City: %s\n", p.Level, p.Money, p.City)
	if p.LastLogin != "" {
		fmt.Printf("Last login: %s\n", p.LastLogin)
	}
}

func (o *Output) printHealthResult(r HealthResult) {
	fmt.Printf("Status:  %s\n", r.Status)
	fmt.Printf("Service: %s\n", r.Service)
	fmt.Printf("Users:   %d\n", r.UsersCount)
	fmt.Printf("Time:    %s\n", r.Timestamp)
}
