package notebook

// Bootstrap prepares the collection for a fresh session and returns the id
// that should become active: on an empty collection it seeds the welcome
// document; otherwise it restores the saved active id when that document
// still exists, else the first document.
func (s *Store) Bootstrap() string {
	if s.Len() == 0 {
		doc := s.Create("Welcome to The Notebook", welcomeContent)
		return doc.ID
	}

	if saved := s.adapter.LoadActiveID(); saved != "" && s.Get(saved) != nil {
		return saved
	}
	if docs := s.All(); len(docs) > 0 {
		return docs[0].ID
	}
	return ""
}

const welcomeContent = `# Welcome to The Notebook! 📓

This is your personal Markdown editor with **live preview** and **syntax highlighting**!

## Features

- ✨ Live Markdown preview
- 🎨 Syntax highlighting for code blocks
- 💾 Auto-save to browser storage
- 🔍 Search through your notes
- 📱 Responsive design

## Markdown Examples

### Text Formatting

**Bold text** and *italic text* and ~~strikethrough~~

### Lists

- Item 1
- Item 2
  - Nested item
- Item 3

1. First
2. Second
3. Third

### Links and Images

[Visit Google](https://google.com)

### Blockquote

> This is a blockquote.
> It can span multiple lines.

### Code

Inline ` + "`code`" + ` looks like this.

### Code Blocks with Syntax Highlighting

` + "```python" + `
def hello_world():
    print("Hello, World!")
    return True

if __name__ == "__main__":
    hello_world()
` + "```" + `

` + "```javascript" + `
const greet = (name) => {
    console.log(` + "`Hello, ${name}!`" + `);
    return true;
};

greet("World");
` + "```" + `

` + "```json" + `
{
    "name": "The Notebook",
    "version": "1.0.0",
    "features": ["markdown", "syntax-highlighting", "auto-save"]
}
` + "```" + `

### Tables

| Feature | Status |
|---------|--------|
| Markdown | ✅ |
| Syntax Highlighting | ✅ |
| Auto-save | ✅ |

### Horizontal Rule

---

## Keyboard Shortcuts

- **Ctrl + N** - New file
- **Ctrl + S** - Save (auto-saves anyway!)
- **Escape** - Close modal

---

Happy writing! ✨
`
