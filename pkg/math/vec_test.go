package math

import (
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec2Normalize(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec2.Normalize().Length() = %v, want ~1", l)
	}

	if z := (Vec2{}).Normalize(); z != (Vec2{}) {
		t.Errorf("zero Vec2.Normalize() = %v, want zero", z)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Div(t *testing.T) {
	got := Vec3{4, 9, 1}.Div(Vec3{2, 3, 0})
	want := Vec3{2, 3, 0}
	if got != want {
		t.Errorf("Vec3.Div() = %v, want %v", got, want)
	}
}

func TestIsFinite(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"vec2 finite", Vec2{1, 2}.IsFinite(), true},
		{"vec2 nan", Vec2{nan, 0}.IsFinite(), false},
		{"vec3 finite", Vec3{1, 2, 3}.IsFinite(), true},
		{"vec3 inf", Vec3{0, 0, inf}.IsFinite(), false},
		{"quat identity", QuatIdentity().IsFinite(), true},
		{"quat nan", Quat{W: nan}.IsFinite(), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: IsFinite() = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}
