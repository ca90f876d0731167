package content

// BlockType discriminates the content block union.
type BlockType string

const (
	BlockTypeText  BlockType = "text"
	BlockTypeImage BlockType = "image"
)

// MediaType enumerates the image formats the Messages API accepts inline.
type MediaType string

const (
	MediaTypeJPEG MediaType = "image/jpeg"
	MediaTypePNG  MediaType = "image/png"
	MediaTypeGIF  MediaType = "image/gif"
	MediaTypeWebP MediaType = "image/webp"
)

// Block is one discrete unit of the ordered multimodal payload sent to the
// model. Text blocks carry Text; image blocks carry MediaType and
// base64-encoded Data. Blocks are immutable once built.
type Block struct {
	Type      BlockType
	Text      string
	MediaType MediaType
	Data      string
}

// TextBlock creates a text content block.
func TextBlock(text string) Block {
	return Block{Type: BlockTypeText, Text: text}
}

// ImageBlock creates an inline image content block from base64-encoded data.
func ImageBlock(mediaType MediaType, data string) Block {
	return Block{Type: BlockTypeImage, MediaType: mediaType, Data: data}
}
