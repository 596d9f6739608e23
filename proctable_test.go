package fusekafka

import "testing"

func TestCmdlineContains(t *testing.T) {
	sig := Signature(DefaultBinary)
	worker := "fuse_kafka\x00_\x00-oallow_other\x00-ononempty\x00-s\x00-omodules=subdir,subdir=.\x00-f\x00--\x00--directories\x00/var/log\x00"

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"worker", worker, true},
		{"other options", "fuse_kafka\x00_\x00-f\x00--\x00", false},
		{"unrelated", "/usr/sbin/sshd\x00-D\x00", false},
		{"wrapped in shell", "sh\x00-c\x00" + sig + " --directories /tmp\x00", true},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmdlineContains([]byte(tt.raw), sig); got != tt.want {
				t.Errorf("cmdlineContains() = %v, want %v", got, tt.want)
			}
		})
	}
}
