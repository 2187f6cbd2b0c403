// Package mailer envia e-mails transacionais. A primeira tentativa usa a
// API HTTP do provedor; se ela falhar, o envio cai para um relay SMTP.
// O resultado é sempre um SendResult, nunca um erro propagado: campanhas
// registram falhas por destinatário sem abortar o lote.
package mailer

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/bizhub-api/internal/config"
	"github.com/vfg2006/bizhub-api/pkg/log"
)

const (
	ServiceTransactional = "transactional"
	ServiceSMTPRelay     = "smtp_relay"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Message struct {
	To      string
	Subject string
	Body    string
}

// SendResult descreve o desfecho de um envio, qualquer que seja o serviço
// que acabou atendendo
type SendResult struct {
	Success   bool   `json:"success"`
	Service   string `json:"service"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Mailer interface {
	Send(msg *Message) *SendResult
}

type Service struct {
	cfg        *config.Mailer
	httpClient *http.Client
	// sendSMTP é substituível em teste
	sendSMTP func(addr string, a smtp.Auth, from string, to []string, body []byte) error
}

func NewService(cfg *config.Mailer) *Service {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		sendSMTP:   smtp.SendMail,
	}
}

// Send tenta o provedor transacional e, em caso de falha, o relay SMTP.
// O resultado relata qual serviço atendeu e, se ambos falharam, o último erro.
func (s *Service) Send(msg *Message) *SendResult {
	result, err := s.sendTransactional(msg)
	if err == nil {
		return result
	}

	log.L.WithError(err).WithField("to", msg.To).
		Warn("mailer: envio transacional falhou, tentando relay SMTP")

	if err := s.sendRelay(msg); err != nil {
		log.L.WithError(err).WithField("to", msg.To).
			Error("mailer: relay SMTP também falhou")
		return &SendResult{
			Success: false,
			Service: ServiceSMTPRelay,
			Error:   err.Error(),
		}
	}

	return &SendResult{
		Success: true,
		Service: ServiceSMTPRelay,
	}
}

type transmissionRequest struct {
	Recipients []recipient `json:"recipients"`
	Content    content     `json:"content"`
}

type recipient struct {
	Address string `json:"address"`
}

type content struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type transmissionResponse struct {
	Results struct {
		ID string `json:"id"`
	} `json:"results"`
}

func (s *Service) sendTransactional(msg *Message) (*SendResult, error) {
	if s.cfg.APIKey == "" {
		return nil, fmt.Errorf("api key do provedor transacional não configurada")
	}

	payload, err := json.Marshal(&transmissionRequest{
		Recipients: []recipient{{Address: msg.To}},
		Content: content{
			From:    s.cfg.FromEmail,
			Subject: msg.Subject,
			HTML:    msg.Body,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, s.cfg.BaseURL+"/transmissions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("provedor transacional respondeu %d: %s", resp.StatusCode, string(body))
	}

	var parsed transmissionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	return &SendResult{
		Success:   true,
		Service:   ServiceTransactional,
		MessageID: parsed.Results.ID,
	}, nil
}

func (s *Service) sendRelay(msg *Message) error {
	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.cfg.FromEmail, msg.To, msg.Subject, msg.Body,
	)

	return s.sendSMTP(addr, auth, s.cfg.FromEmail, []string{msg.To}, []byte(body))
}
