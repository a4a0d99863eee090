package models

import "testing"

func TestRegistrationAcceptanceCarriesQRCode(t *testing.T) {
	registration := EventRegistration{Status: RegistrationStatusPending}

	if registration.Accepted() {
		t.Fatal("pending registration reports accepted")
	}
	if registration.QRCode != nil {
		t.Fatal("pending registration carries a QR code")
	}

	registration.MarkAccepted("http://localhost:3000/static/uploads/events/gala/registration/qr-codes/qr-7.png")

	if !registration.Accepted() {
		t.Fatal("registration not accepted after MarkAccepted")
	}
	if registration.QRCode == nil || *registration.QRCode == "" {
		t.Fatal("accepted registration has no QR code URL")
	}
}

func TestAcceptedForEachStatus(t *testing.T) {
	cases := []struct {
		status RegistrationStatus
		want   bool
	}{
		{RegistrationStatusPending, false},
		{RegistrationStatusAccepted, true},
		{RegistrationStatusRejected, false},
	}
	for _, tc := range cases {
		r := EventRegistration{Status: tc.status}
		if got := r.Accepted(); got != tc.want {
			t.Errorf("Accepted() with status %q = %v, want %v", tc.status, got, tc.want)
		}
	}
}
