package speech

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestParsePCMConfig(t *testing.T) {
	cases := []struct {
		mime string
		want pcmConfig
	}{
		{"audio/L16;codec=pcm;rate=24000", pcmConfig{24000, 1, 16}},
		{"audio/L24;rate=48000;channels=2", pcmConfig{48000, 2, 24}},
		{"audio/ogg", pcmConfig{24000, 1, 16}}, // defaults throughout
		{"", pcmConfig{24000, 1, 16}},
	}
	for _, c := range cases {
		if got := parsePCMConfig(c.mime); got != c.want {
			t.Errorf("parsePCMConfig(%q) = %+v, want %+v", c.mime, got, c.want)
		}
	}
}

func TestIsRawPCM(t *testing.T) {
	cases := []struct {
		mime string
		want bool
	}{
		{"audio/L16;codec=pcm;rate=24000", true},
		{"audio/l16", true},
		{"audio/mp4;codec=pcm", true},
		{"audio/wav", false},
		{"audio/mpeg", false},
	}
	for _, c := range cases {
		if got := isRawPCM(c.mime); got != c.want {
			t.Errorf("isRawPCM(%q) = %v, want %v", c.mime, got, c.want)
		}
	}
}

func TestWrapPCMInWAV(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	cfg := pcmConfig{SampleRate: 24000, Channels: 1, BitDepth: 16}

	wav := wrapPCMInWAV(pcm, cfg)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("wav length = %d, want %d", len(wav), 44+len(pcm))
	}
	if !bytes.Equal(wav[0:4], []byte("RIFF")) || !bytes.Equal(wav[8:12], []byte("WAVE")) {
		t.Error("missing RIFF/WAVE markers")
	}
	if riffLen := binary.LittleEndian.Uint32(wav[4:8]); riffLen != uint32(36+len(pcm)) {
		t.Errorf("riff chunk size = %d", riffLen)
	}
	if format := binary.LittleEndian.Uint16(wav[20:22]); format != 1 {
		t.Errorf("audio format = %d, want 1 (PCM)", format)
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 24000 {
		t.Errorf("sample rate = %d", rate)
	}
	// byte rate = rate * channels * depth/8
	if byteRate := binary.LittleEndian.Uint32(wav[28:32]); byteRate != 48000 {
		t.Errorf("byte rate = %d, want 48000", byteRate)
	}
	if dataLen := binary.LittleEndian.Uint32(wav[40:44]); dataLen != uint32(len(pcm)) {
		t.Errorf("data length = %d", dataLen)
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Error("pcm payload corrupted")
	}
}

func TestWrapPCMInWAV_Stereo24Bit(t *testing.T) {
	pcm := make([]byte, 12)
	cfg := pcmConfig{SampleRate: 48000, Channels: 2, BitDepth: 24}

	wav := wrapPCMInWAV(pcm, cfg)

	if channels := binary.LittleEndian.Uint16(wav[22:24]); channels != 2 {
		t.Errorf("channels = %d", channels)
	}
	if blockAlign := binary.LittleEndian.Uint16(wav[32:34]); blockAlign != 6 {
		t.Errorf("block align = %d, want 6", blockAlign)
	}
	if depth := binary.LittleEndian.Uint16(wav[34:36]); depth != 24 {
		t.Errorf("bit depth = %d", depth)
	}
}
