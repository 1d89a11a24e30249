package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/ventas-next/internal/i18n"
	"github.com/ventas-next/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOrderStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		locale              string
		status              string
		orderNo             string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:    "confirmed_es",
			locale:  i18n.LocaleES,
			status:  "confirmed",
			orderNo: "VN-CONFIRM",
			wantSubjectContains: []string{
				"VN-CONFIRM",
				"Confirmado",
			},
			wantBodyContains: []string{
				"VN-CONFIRM",
				"Confirmado",
			},
		},
		{
			name:    "cancelled_en",
			locale:  i18n.LocaleEN,
			status:  "cancelled",
			orderNo: "VN-CANCEL",
			wantSubjectContains: []string{
				"VN-CANCEL",
				"Cancelled",
			},
			wantBodyContains: []string{
				"VN-CANCEL",
				"Cancelled",
			},
		},
		{
			name:    "unknown_status_falls_back_to_raw",
			locale:  i18n.LocaleEN,
			status:  "archived",
			orderNo: "VN-RAW",
			wantSubjectContains: []string{
				"archived",
			},
			wantBodyContains: []string{
				"archived",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := OrderStatusEmailInput{
				OrderNo: tt.orderNo,
				Status:  tt.status,
				Amount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(19800)),
			}
			subject, body := buildOrderStatusContent(input, tt.locale)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestBuildVerifyCodeContent(t *testing.T) {
	subject, body := buildVerifyCodeContent("482913", "register", i18n.LocaleES)
	if !strings.Contains(subject, "Confirma tu correo") {
		t.Fatalf("register subject unexpected: %s", subject)
	}
	if !strings.Contains(body, "482913") {
		t.Fatalf("body missing code: %s", body)
	}

	subject, _ = buildVerifyCodeContent("482913", "reset", i18n.LocaleEN)
	if !strings.Contains(subject, "Password reset code") {
		t.Fatalf("reset subject unexpected: %s", subject)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
