package graphics

// TextureCache shares one device texture between specs that name the same asset
// with the same upload format and orientation.
type TextureCache struct {
	device   Device
	textures map[textureKey]*Texture
}

type textureKey struct {
	path   string
	format TextureFormat
	flip   bool
}

// NewTextureCache returns an empty cache uploading through device
func NewTextureCache(device Device) *TextureCache {
	return &TextureCache{
		device:   device,
		textures: make(map[textureKey]*Texture),
	}
}

// Get returns the cached texture for spec, loading it on first use
func (c *TextureCache) Get(spec TextureSpec) (*Texture, error) {
	key := textureKey{path: spec.Path, format: spec.Format, flip: spec.FlipVertically}
	if tex, ok := c.textures[key]; ok {
		return tex, nil
	}

	tex, err := LoadTexture(c.device, spec)
	if err != nil {
		return nil, err
	}

	c.textures[key] = tex
	return tex, nil
}

// Len returns the number of distinct textures loaded
func (c *TextureCache) Len() int {
	return len(c.textures)
}

// Release deletes every cached texture and empties the cache
func (c *TextureCache) Release() {
	for k, tex := range c.textures {
		tex.Delete()
		delete(c.textures, k)
	}
}
