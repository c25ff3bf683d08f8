package util

import "testing"

func TestToSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tin Tức Công Nghệ", "tin-tuc-cong-nghe"},
		{"Tin tức", "tin-tuc"},
		{"Thể thao", "the-thao"},
		{"Giải trí", "giai-tri"},
		{"Kinh doanh", "kinh-doanh"},
		{"Đà Nẵng", "da-nang"},
		{"  Hello   World!! ", "hello-world"},
		{"snake_case_name", "snake-case-name"},
		{"already-a-slug", "already-a-slug"},
		{"Breaking News 2025", "breaking-news-2025"},
		{"", ""},
		{"   ", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		if got := ToSlug(tc.in); got != tc.want {
			t.Errorf("ToSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugWithSuffix(t *testing.T) {
	if got := SlugWithSuffix("tin-tuc", 2); got != "tin-tuc-2" {
		t.Errorf("got %q, want tin-tuc-2", got)
	}
}
