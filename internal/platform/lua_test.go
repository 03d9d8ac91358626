package platform

import (
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func testInfo() *Info {
	return &Info{
		OS:       "linux",
		Arch:     "x86_64",
		ArchRaw:  "amd64",
		ABI:      ABIMusl,
		WordSize: 64,
		Platform: "alpine",
		Family:   FamilyAlpine,
		Version:  "3.19",
	}
}

func TestInjectPlatformTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, testInfo()); err != nil {
		t.Fatalf("InjectPlatformTable() failed: %v", err)
	}

	tests := []struct {
		expr string
		want string
	}{
		{expr: "return platform.os", want: "linux"},
		{expr: "return platform.arch", want: "x86_64"},
		{expr: "return platform.abi", want: "musl"},
		{expr: "return tostring(platform.word_size)", want: "64"},
		{expr: "return tostring(platform.is_musl)", want: "true"},
		{expr: "return tostring(platform.is_alpine)", want: "true"},
		{expr: "return tostring(platform.is_windows)", want: "false"},
		{expr: "return platform.distro.id", want: "alpine"},
		{expr: `return platform.when(platform.is_musl, "yes") or "no"`, want: "yes"},
		{expr: `return platform.when(platform.is_windows, "yes") or "no"`, want: "no"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if err := L.DoString(tt.expr); err != nil {
				t.Fatalf("eval failed: %v", err)
			}
			got := L.Get(-1).String()
			L.Pop(1)
			if got != tt.want {
				t.Errorf("%s = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestPlatformTableIsReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, testInfo()); err != nil {
		t.Fatalf("InjectPlatformTable() failed: %v", err)
	}

	if err := L.DoString(`platform.os = "hacked"`); err == nil {
		t.Error("expected write to platform table to fail")
	}
}

func TestInjectPlatformTableNoDistro(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	info := &Info{OS: "darwin", Arch: "aarch64", ArchRaw: "arm64", WordSize: 64}
	if err := InjectPlatformTable(L, info); err != nil {
		t.Fatalf("InjectPlatformTable() failed: %v", err)
	}

	if err := L.DoString("return platform.distro == nil"); err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if L.Get(-1) != lua.LTrue {
		t.Error("platform.distro should be nil on non-Linux platforms")
	}
}
