package attachment

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mimetype string
		want     Classification
	}{
		{mimetype: "image/png", want: Classification{IsImage: true}},
		{mimetype: "image/webp", want: Classification{IsImage: true}},
		{mimetype: "text/plain", want: Classification{IsText: true}},
		{mimetype: "text/x-go", want: Classification{IsText: true}},
		{mimetype: "application/json", want: Classification{IsText: true}},
		{mimetype: "application/javascript", want: Classification{IsText: true}},
		{mimetype: "application/typescript", want: Classification{IsText: true}},
		{mimetype: "application/xml", want: Classification{IsText: true}},
		{mimetype: "application/yaml", want: Classification{IsText: true}},
		{mimetype: "application/x-yaml", want: Classification{IsText: true}},
		{mimetype: "application/zip", want: Classification{}},
		{mimetype: "application/octet-stream", want: Classification{}},
		{mimetype: "", want: Classification{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.mimetype, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.mimetype); got != tt.want {
				t.Fatalf("Classify(%q) = %+v, want %+v", tt.mimetype, got, tt.want)
			}
		})
	}
}
