package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftguard/backend/internal/config"
	"github.com/shiftguard/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

// subjects and templates per notification type
var notificationKinds = map[string]struct {
	Subject  string
	Template string
}{
	"create_employee":     {"ShiftGuard - your account", "./templates/new_account_email.html"},
	"reset_password":      {"ShiftGuard - password reset", "./templates/reset_password_otp_email.html"},
	"assignment_declined": {"ShiftGuard - shift declined", "./templates/assignment_declined_email.html"},
	"conflict_report":     {"ShiftGuard - conflict report", "./templates/conflict_report_email.html"},
}

func main() {
	/**********************************************
	 * set up the logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * load configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * create the mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("failed to connect to the mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * connect to rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open a channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"notification_queue",
		true,  // durable
		false, // do not auto-delete when no consumer is connected
		false, // not exclusive
		false, // wait for the broker to confirm
		nil,
	)
	if err != nil {
		logger.Error("failed to declare the queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // let the broker pick the consumer tag
		false, // manual acks
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to start consuming", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("message received", slog.String("message", string(msg.Body)))

				notification := domain.NotificationMessage{}
				if err := json.Unmarshal(msg.Body, &notification); err != nil {
					logger.Error("failed to decode notification", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				kind, ok := notificationKinds[notification.Type]
				if !ok {
					logger.Error("unsupported notification type", slog.String("type", notification.Type))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("failed to set sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(notification.To); err != nil {
					logger.Error("failed to set recipient", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				tmpl, err := template.ParseFiles(kind.Template)
				if err != nil {
					logger.Error("failed to parse mail template", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
					logger.Error("failed to render mail body", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject(kind.Subject)

				if err := client.DialAndSend(m); err != nil {
					logger.Error("failed to send mail", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // requeue, the SMTP server may be back later
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for messages... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down notifier...")
	cancel()
	wg.Wait()
	slog.Info("notifier stopped")
}
