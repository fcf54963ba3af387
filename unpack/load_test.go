package unpack

import (
	"errors"
	"testing"

	"dmmu/dmm"
)

func TestIsConverted(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{name: "sentinel", data: Sentinel + "\n\n(1,1,1) = (\n/turf)\n", want: true},
		{name: "sentinel crlf", data: Sentinel + "\r\n", want: true},
		{name: "sentinel only", data: Sentinel, want: true},
		{name: "sentinel with bom", data: "\xEF\xBB\xBF" + Sentinel + "\n", want: true},
		{name: "packed", data: samplePacked, want: false},
		{name: "sentinel not first", data: "//x\n" + Sentinel + "\n", want: false},
		{name: "tgm marker", data: dmm.TGMHeader + "\n", want: false},
		{name: "empty", data: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConverted([]byte(tt.data)); got != tt.want {
				t.Errorf("IsConverted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("packed source", func(t *testing.T) {
		m, err := Load([]byte(samplePacked), nil)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if m.KeyLength != 2 {
			t.Errorf("KeyLength = %d, want 2", m.KeyLength)
		}
	})

	t.Run("already converted", func(t *testing.T) {
		m, err := dmm.Parse(samplePacked)
		if err != nil {
			t.Fatal(err)
		}
		data, err := Encode(m)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Load(data, nil); !errors.Is(err, ErrAlreadyConverted) {
			t.Errorf("Load() error = %v, want ErrAlreadyConverted", err)
		}
	})

	t.Run("invalid encoding", func(t *testing.T) {
		var ee *dmm.EncodingError
		if _, err := Load([]byte("\"a\" = (/turf\xff)"), nil); !errors.As(err, &ee) {
			t.Errorf("Load() error = %v, want EncodingError", err)
		}
	})

	t.Run("custom decoder", func(t *testing.T) {
		called := ""
		dec := DecoderFunc(func(text string) (*dmm.Map, error) {
			called = text
			return dmm.NewBuilder(dmm.Coord{X: 1, Y: 1, Z: 1}).Set(dmm.Coord{X: 1, Y: 1, Z: 1}, "/turf").Build()
		})
		if _, err := Load([]byte("\xEF\xBB\xBFpayload"), dec); err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if called != "payload" {
			t.Errorf("decoder received %q, want BOM stripped payload", called)
		}
	})
}

func TestLoadText_AlreadyConverted(t *testing.T) {
	if _, err := LoadText(Sentinel+"\n", nil); !errors.Is(err, ErrAlreadyConverted) {
		t.Errorf("LoadText() error = %v, want ErrAlreadyConverted", err)
	}
}

func TestOpen(t *testing.T) {
	packed, err := Open([]byte(samplePacked))
	if err != nil {
		t.Fatalf("Open(packed) error = %v", err)
	}
	data, err := Encode(packed)
	if err != nil {
		t.Fatal(err)
	}
	expanded, err := Open(data)
	if err != nil {
		t.Fatalf("Open(expanded) error = %v", err)
	}
	sameContent(t, packed, expanded)
}
