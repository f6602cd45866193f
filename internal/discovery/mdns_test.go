package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantInstance string
		wantIP       string
		wantPort     int
	}{
		{
			name: "IPv4 entry",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "userdeck-fakeapi"},
				HostName:      "devbox.local.",
				Port:          8089,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
				Text:          []string{"path=/users"},
			},
			wantInstance: "userdeck-fakeapi",
			wantIP:       "192.168.4.16",
			wantPort:     8089,
		},
		{
			name: "no port defaults to 80",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "api"},
				HostName:      "devbox.local",
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantInstance: "api",
			wantIP:       "10.0.0.5",
			wantPort:     80,
		},
		{
			name: "missing instance falls back to hostname",
			entry: &zeroconf.ServiceEntry{
				HostName: "devbox.local.",
				Port:     8089,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantInstance: "devbox.local",
			wantIP:       "10.0.0.5",
			wantPort:     8089,
		},
		{
			name: "IPv4 preferred over IPv6",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "api"},
				HostName:      "devbox.local",
				Port:          8089,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
			},
			wantInstance: "api",
			wantIP:       "192.168.1.50",
			wantPort:     8089,
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "api"},
				HostName:      "devbox.local",
				Port:          8089,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantInstance: "api",
			wantIP:       "fe80::1",
			wantPort:     8089,
		},
		{
			name:    "empty hostname",
			entry:   &zeroconf.ServiceEntry{AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")}},
			wantNil: true,
		},
		{
			name:    "no address",
			entry:   &zeroconf.ServiceEntry{HostName: "devbox.local"},
			wantNil: true,
		},
		{
			name:    "nil entry",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if svc != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", svc)
				}
				return
			}
			if svc == nil {
				t.Fatal("parseServiceEntry() = nil, want service")
			}
			if svc.Instance != tt.wantInstance {
				t.Errorf("Instance = %v, want %v", svc.Instance, tt.wantInstance)
			}
			if svc.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", svc.IP, tt.wantIP)
			}
			if svc.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", svc.Port, tt.wantPort)
			}
			if time.Since(svc.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", svc.DiscoveredAt)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	got := parseText([]string{"path=/users", "version=1.0", "flag", "eq=a=b"})

	want := map[string]string{"path": "/users", "version": "1.0", "flag": "", "eq": "a=b"}
	if len(got) != len(want) {
		t.Fatalf("parseText() has %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("metadata[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestFormatTextIsSorted(t *testing.T) {
	got := formatText(map[string]string{"version": "dev", "path": "/users", "users": "5"})

	want := []string{"path=/users", "users=5", "version=dev"}
	if len(got) != len(want) {
		t.Fatalf("formatText() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("formatText()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestServiceBaseURL(t *testing.T) {
	tests := []struct {
		ip   string
		port int
		want string
	}{
		{"192.168.1.10", 8089, "http://192.168.1.10:8089"},
		{"fe80::1", 8089, "http://[fe80::1]:8089"},
	}
	for _, tt := range tests {
		svc := &Service{IP: tt.ip, Port: tt.port}
		if got := svc.BaseURL(); got != tt.want {
			t.Errorf("BaseURL() = %v, want %v", got, tt.want)
		}
	}
}

func TestServiceGetMetadata(t *testing.T) {
	var svc Service
	if svc.GetMetadata("path") != "" {
		t.Error("nil metadata should read as empty")
	}
	svc.Metadata = map[string]string{"path": "/users"}
	if svc.GetMetadata("path") != "/users" {
		t.Error("GetMetadata(path) mismatch")
	}
}

func TestAdvertiseValidates(t *testing.T) {
	if _, err := Advertise("", 8089, nil); err == nil {
		t.Error("empty instance should be rejected")
	}
	if _, err := Advertise("api", 0, nil); err == nil {
		t.Error("zero port should be rejected")
	}
}

func TestNewScanner(t *testing.T) {
	if NewScanner().Timeout != DefaultScanTimeout {
		t.Error("default timeout not applied")
	}
}
