package sendgrid_adapter

import (
	"addisnest-service/internal/core/port"
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailClient struct {
	sent *mail.SGMailV3
	resp *rest.Response
	err  error
}

func (f *fakeMailClient) Send(email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = email
	return f.resp, f.err
}

func TestNewEmailSender_RequiresKey(t *testing.T) {
	_, err := NewEmailSender("", "no-reply@addisnest.com", "Addisnest", false)
	assert.Error(t, err)
}

func TestEmailSender_SendEmail(t *testing.T) {
	testCases := []struct {
		name    string
		sandbox bool
		resp    *rest.Response
		err     error
		wantErr bool
	}{
		{name: "accepted", resp: &rest.Response{StatusCode: 202}},
		{name: "sandbox", sandbox: true, resp: &rest.Response{StatusCode: 200}},
		{name: "rejected", resp: &rest.Response{StatusCode: 401, Body: "unauthorized"}, wantErr: true},
		{name: "transport error", err: errors.New("dial tcp: timeout"), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeMailClient{resp: tc.resp, err: tc.err}
			sender := &EmailSender{client: client, fromEmail: "no-reply@addisnest.com", fromName: "Addisnest", sandbox: tc.sandbox}

			err := sender.SendEmail(context.Background(), port.EmailMessage{
				ToEmail:   "buyer@example.com",
				Subject:   "Your verification code",
				PlainText: "123456",
			})
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, client.sent)
			assert.Equal(t, "Your verification code", client.sent.Subject)
			assert.Equal(t, "no-reply@addisnest.com", client.sent.From.Address)
			if tc.sandbox {
				require.NotNil(t, client.sent.MailSettings)
				assert.True(t, *client.sent.MailSettings.SandboxMode.Enable)
			} else {
				assert.Nil(t, client.sent.MailSettings)
			}
		})
	}
}
