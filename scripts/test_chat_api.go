package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const (
	baseURL = "http://localhost:3000/api"
	userID  = "66a32015-43b7-4f30-a4c9-6f4c74a0d3c3"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func dataField(body []byte) map[string]interface{} {
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	if data, ok := parsed["data"].(map[string]interface{}); ok {
		return data
	}
	return nil
}

func main() {
	color.Cyan("🚀 Starting Chat Pipeline Smoke Test\n")

	// 1. Open a session
	color.Yellow("\n[CHAT] 1. Open Session")
	resp, body, err := sendRequest("POST", "/chat/v1/session", map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var sessionID string
	if data := dataField(body); data != nil {
		if id, ok := data["session_id"].(string); ok {
			sessionID = id
			fmt.Printf("Session ID: %s\n", sessionID)
		}
	}
	if sessionID == "" {
		color.Red("No session id returned, aborting")
		os.Exit(1)
	}

	// 2. Neutral message, expect a plain supportive reply
	color.Yellow("\n[CHAT] 2. Neutral Message")
	resp, body, err = sendRequest("POST", "/chat/v1/message", map[string]interface{}{
		"session_id": sessionID,
		"message":    "I had an ordinary day at work today.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := dataField(body); data != nil {
		fmt.Printf("Reply: %s\n", data["response"])
		fmt.Printf("Sentiment: %s  Level: %s\n", data["sentiment_label"], data["escalation_level"])
	}

	// 3. Distressed message, expect escalation and possibly a handoff
	color.Yellow("\n[CHAT] 3. Distressed Message")
	resp, body, err = sendRequest("POST", "/chat/v1/message", map[string]interface{}{
		"session_id": sessionID,
		"message":    "I feel completely hopeless, I can't see a way out anymore.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	if data := dataField(body); data != nil {
		fmt.Printf("Reply: %s\n", data["response"])
		fmt.Printf("Sentiment: %s  Level: %s\n", data["sentiment_label"], data["escalation_level"])
		if meta, ok := data["meta"].(map[string]interface{}); ok {
			fmt.Printf("Handoff: %v\n", meta["handoff_id"])
		}
	}

	// 4. Repeat the same message, the reply must not be a duplicate
	color.Yellow("\n[CHAT] 4. Repeated Message (dedup check)")
	resp, body, err = sendRequest("POST", "/chat/v1/message", map[string]interface{}{
		"session_id": sessionID,
		"message":    "I feel completely hopeless, I can't see a way out anymore.",
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		if data := dataField(body); data != nil {
			fmt.Printf("Reply: %s\n", data["response"])
		}
	}

	// 5. Read the session history back
	color.Yellow("\n[CHAT] 5. Session History")
	resp, body, err = sendRequest("GET", "/chat/v1/session/"+sessionID+"/history", nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		if data := dataField(body); data != nil {
			if turns, ok := data["turns"].([]interface{}); ok {
				fmt.Printf("Turns: %d\n", len(turns))
			} else {
				prettyPrint(data)
			}
		}
	}

	// 6. Leave feedback
	color.Yellow("\n[CHAT] 6. Feedback")
	resp, body, err = sendRequest("POST", "/chat/v1/feedback", map[string]interface{}{
		"user_id": userID,
		"rating":  4,
	})
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var parsed map[string]interface{}
		json.Unmarshal(body, &parsed)
		prettyPrint(parsed)
	}

	color.Cyan("\n✅ Test Sequence Complete")
}
