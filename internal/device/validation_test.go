package device

import (
	"errors"
	"strings"
	"testing"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input   string
		want    Type
		wantErr bool
	}{
		{"switch", TypeSwitch, false},
		{"SWITCH", TypeSwitch, false},
		{"Dimmer", TypeDimmer, false},
		{"lock", TypeLock, false},
		{"THERMOSTAT", TypeThermostat, false},
		{"  switch  ", TypeSwitch, false},
		{"toaster", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidType) {
					t.Errorf("ParseType(%q) error = %v, want ErrInvalidType", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseType(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEnums(t *testing.T) {
	if p, ok := ParsePower("ON"); !ok || p != PowerOn {
		t.Errorf("ParsePower(ON) = %q, %v", p, ok)
	}
	if _, ok := ParsePower("dim"); ok {
		t.Error("ParsePower(dim) accepted")
	}
	if s, ok := ParseLockState("Unlocked"); !ok || s != Unlocked {
		t.Errorf("ParseLockState(Unlocked) = %q, %v", s, ok)
	}
	if _, ok := ParseLockState("open"); ok {
		t.Error("ParseLockState(open) accepted")
	}
	if m, ok := ParseMode("AUTO"); !ok || m != ModeAuto {
		t.Errorf("ParseMode(AUTO) = %q, %v", m, ok)
	}
	if _, ok := ParseMode("eco"); ok {
		t.Error("ParseMode(eco) accepted")
	}
}

func TestGenerateID(t *testing.T) {
	id1 := GenerateID()
	id2 := GenerateID()

	const uuidLen = 36
	if len(id1) != uuidLen {
		t.Errorf("GenerateID() = %q, want 36 character UUID", id1)
	}
	if id1 == id2 {
		t.Errorf("GenerateID() produced duplicate IDs: %q", id1)
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Living Room Light"); err != nil {
		t.Errorf("ValidateName(valid) error = %v", err)
	}
	if err := ValidateName(""); !errors.Is(err, ErrInvalidName) {
		t.Errorf("ValidateName(empty) error = %v, want ErrInvalidName", err)
	}
	if err := ValidateName("   "); !errors.Is(err, ErrInvalidName) {
		t.Errorf("ValidateName(blank) error = %v, want ErrInvalidName", err)
	}
	if err := ValidateName(strings.Repeat("x", 101)); !errors.Is(err, ErrInvalidName) {
		t.Errorf("ValidateName(long) error = %v, want ErrInvalidName", err)
	}
}

func TestNew(t *testing.T) {
	t.Run("constructs each variant", func(t *testing.T) {
		for _, typ := range AllTypes() {
			d, err := New(string(typ), GenerateID(), "Test Device", CreateOptions{})
			if err != nil {
				t.Fatalf("New(%q) error = %v", typ, err)
			}
			if d.Type() != typ {
				t.Errorf("Type() = %q, want %q", d.Type(), typ)
			}
		}
	})

	t.Run("type is case-insensitive", func(t *testing.T) {
		d, err := New("Switch", GenerateID(), "Case Test", CreateOptions{})
		if err != nil {
			t.Fatalf("New(Switch) error = %v", err)
		}
		if d.Type() != TypeSwitch {
			t.Errorf("Type() = %q, want switch", d.Type())
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		_, err := New("camera", GenerateID(), "Nope", CreateOptions{})
		if !errors.Is(err, ErrInvalidType) {
			t.Errorf("New(camera) error = %v, want ErrInvalidType", err)
		}
	})

	t.Run("lock pin option is honoured", func(t *testing.T) {
		d, err := New("lock", GenerateID(), "Front Door", CreateOptions{PIN: "4321"})
		if err != nil {
			t.Fatalf("New(lock) error = %v", err)
		}
		l, ok := d.(*Lock)
		if !ok {
			t.Fatalf("New(lock) returned %T, want *Lock", d)
		}
		if !l.UnlockWithPIN("4321") {
			t.Error("UnlockWithPIN(4321) = false, want true")
		}
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		_, err := New("switch", GenerateID(), "", CreateOptions{})
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("New with empty name error = %v, want ErrInvalidName", err)
		}
	})
}
