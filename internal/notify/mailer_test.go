// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package notify

import "testing"

func TestNopMailerSend(t *testing.T) {
	var m Mailer = NopMailer{}
	if err := m.Send(Email{To: "someone@example.com", Subject: "hi", Body: "<p>hi</p>"}); err != nil {
		t.Errorf("NopMailer.Send returned %v", err)
	}
}

func TestSMTPMailerUnreachableRelay(t *testing.T) {
	// Port 1 is never a live SMTP relay; Send must surface the dial error
	// rather than panic or hang.
	m := NewSMTPMailer("127.0.0.1", 1, "", "", "notifications@commonroom.local")
	err := m.Send(Email{To: "someone@example.com", Subject: "hi", Body: "<p>hi</p>"})
	if err == nil {
		t.Error("expected error sending through unreachable relay")
	}
}
