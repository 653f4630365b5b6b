package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Problems reported for a chain.
const (
	ProblemMismatch    = "chain id mismatch"
	ProblemUnreachable = "unreachable"
)

type SlackService struct {
	logger     *logrus.Logger
	webhookURL string
	client     *http.Client
}

type SlackMessage struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Attachment struct {
	Color  string  `json:"color,omitempty"`
	Text   string  `json:"text,omitempty"`
	Fields []Field `json:"fields,omitempty"`
	Footer string  `json:"footer,omitempty"`
	Ts     int64   `json:"ts,omitempty"`
}

type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// ChainAlert describes one chain whose RPC endpoints failed verification.
type ChainAlert struct {
	ChainName string
	ChainID   uint64
	Problem   string
	Detail    string
}

func NewSlackService(logger *logrus.Logger, webhookURL string) (*SlackService, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("slack webhook URL is not set")
	}

	return &SlackService{
		logger:     logger,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// SendVerificationAlert posts one attachment per failing chain.
func (s *SlackService) SendVerificationAlert(appName string, alerts []ChainAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	title := cases.Title(language.English)
	attachments := make([]Attachment, 0, len(alerts))
	for _, alert := range alerts {
		color := "#ffcc00"
		if alert.Problem == ProblemMismatch {
			color = "#ff0000"
		}

		attachments = append(attachments, Attachment{
			Color: color,
			Text:  alert.Detail,
			Fields: []Field{
				{Title: "Chain", Value: alert.ChainName, Short: true},
				{Title: "Chain ID", Value: fmt.Sprintf("%d", alert.ChainID), Short: true},
				{Title: "Problem", Value: title.String(alert.Problem), Short: false},
			},
			Footer: fmt.Sprintf("%s | Checked: %s", appName, time.Now().Format(time.RFC1123)),
			Ts:     time.Now().Unix(),
		})
	}

	names := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		names = append(names, alert.ChainName)
	}

	return s.SendSlackMessage(&SlackMessage{
		Text:        fmt.Sprintf("⚠️ %s wallet chains failed RPC verification: %s", appName, strings.Join(names, ", ")),
		Attachments: attachments,
	})
}

func (s *SlackService) SendSlackMessage(message *SlackMessage) error {
	jsonMessage, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("error marshaling slack message: %w", err)
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewBuffer(jsonMessage))
	if err != nil {
		return fmt.Errorf("error sending slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API returned non-200 status code: %d", resp.StatusCode)
	}

	s.logger.Infof("Successfully sent message to Slack")
	return nil
}
