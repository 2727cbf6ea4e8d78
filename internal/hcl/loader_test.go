package hcl

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegridgo/internal/tensor"
	"github.com/zclconf/go-cty/cty"
)

const decomposeManifest = `
node "WaveletDecompose" {
  display_name = "Wavelet Decompose"
  category     = "framegrid/wavelet"
  entry        = "OnRunWaveletDecompose"

  input "image" {
    type = image
  }
  input "scales" {
    type    = int
    default = 5
    min     = 1
    max     = 8
    step    = 1
  }
  input "encoding" {
    type    = string
    default = "grain"
    choices = ["grain", "linear_light"]
  }
  input "tags" {
    type     = list(string)
    optional = true
  }

  output "residual" {
    type = image
  }
  output "count" {
    type = number
  }
}
`

func load(t *testing.T, files map[string]string) error {
	t.Helper()
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	_, _, err := NewLoader().Load(context.Background(), fsys)
	return err
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// Arrange
	fsys := fstest.MapFS{
		"wavelet/manifest.hcl": &fstest.MapFile{Data: []byte(decomposeManifest)},
		"README.md":            &fstest.MapFile{Data: []byte("not a manifest")},
	}

	// Act
	model, conv, err := NewLoader().Load(context.Background(), fsys)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, conv)
	require.Len(t, model.Nodes, 1)

	def := model.Nodes["WaveletDecompose"]
	require.Equal(t, "Wavelet Decompose", def.DisplayName)
	require.Equal(t, "framegrid/wavelet", def.Category)
	require.Equal(t, "OnRunWaveletDecompose", def.Entry)
	require.Equal(t, "wavelet/manifest.hcl", def.Source)
	require.Equal(t, []string{"image", "scales", "encoding", "tags"}, def.InputOrder)

	require.True(t, def.Inputs["image"].Type.Equals(tensor.ImageType))
	require.False(t, def.Inputs["image"].Optional)

	scales := def.Inputs["scales"]
	require.True(t, scales.IsInt)
	require.True(t, scales.Optional)
	require.Equal(t, 1.0, *scales.Min)
	require.Equal(t, 8.0, *scales.Max)
	n, _ := scales.Default.AsBigFloat().Int64()
	require.EqualValues(t, 5, n)

	require.Equal(t, []string{"grain", "linear_light"}, def.Inputs["encoding"].Choices)
	require.True(t, def.Inputs["tags"].Type.Equals(cty.List(cty.String)))
	require.True(t, def.Inputs["tags"].Optional)
	require.Nil(t, def.Inputs["tags"].Default)

	require.Len(t, def.Outputs, 2)
	require.Equal(t, "residual", def.Outputs[0].Name)
	require.True(t, def.Outputs[0].Type.Equals(tensor.ImageType))
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		files   map[string]string
		wantErr string
	}{
		"syntax error": {
			files:   map[string]string{"a.hcl": `node "X" {`},
			wantErr: "failed to parse",
		},
		"duplicate key": {
			files: map[string]string{
				"a.hcl": "node \"X\" {\n category = \"c\"\n entry = \"E\"\n}",
				"b.hcl": "node \"X\" {\n category = \"c\"\n entry = \"E\"\n}",
			},
			wantErr: `node "X" declared in both`,
		},
		"unknown type": {
			files:   map[string]string{"a.hcl": "node \"X\" {\n category = \"c\"\n entry = \"E\"\n input \"v\" { type = video }\n}"},
			wantErr: `unknown primitive type "video"`,
		},
		"default out of range": {
			files:   map[string]string{"a.hcl": "node \"X\" {\n category = \"c\"\n entry = \"E\"\n input \"v\" {\n type = int\n default = 9\n max = 8\n }\n}"},
			wantErr: "expected a value <= 8, got 9",
		},
		"fractional int default": {
			files:   map[string]string{"a.hcl": "node \"X\" {\n category = \"c\"\n entry = \"E\"\n input \"v\" {\n type = int\n default = 1.5\n }\n}"},
			wantErr: "whole number",
		},
		"choices on number": {
			files:   map[string]string{"a.hcl": "node \"X\" {\n category = \"c\"\n entry = \"E\"\n input \"v\" {\n type = number\n choices = [\"a\"]\n }\n}"},
			wantErr: "choices require a string type",
		},
		"list of images": {
			files:   map[string]string{"a.hcl": "node \"X\" {\n category = \"c\"\n entry = \"E\"\n input \"v\" { type = list(image) }\n}"},
			wantErr: "cannot contain tensor type",
		},
		"min above max": {
			files:   map[string]string{"a.hcl": "node \"X\" {\n category = \"c\"\n entry = \"E\"\n input \"v\" {\n type = number\n min = 2\n max = 1\n }\n}"},
			wantErr: "min 2 is greater than max 1",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := load(t, tc.files)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
