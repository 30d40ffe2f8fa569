package render

// DefaultTemplate is used when no template file can be read. It carries the
// same placeholders as a custom template.
const DefaultTemplate = `---
title: "{{title}}"
summary: "{{summary}}"
publishedAt: "{{publishedAt}}"
tag: "{{category}}"
source: "{{source}}"
originalUrl: "{{originalUrl}}"
autoGenerated: true
---

## 📰 {{title}}

**📡 Fuente:** {{source}}  
**🏷️ Categoría:** {{category}}  
**📅 Fecha original:** {{publishedAt}}

### 📝 Resumen
{{summary}}

### 📖 Contenido
{{content}}

### 🔗 Acceso al Artículo Original
<div style="text-align: center; margin: 2rem 0;">
  <a href="{{originalUrl}}" target="_blank" rel="noopener noreferrer" 
     style="display: inline-block; background: #007bff; color: white; padding: 12px 24px; 
            text-decoration: none; border-radius: 8px; font-weight: bold;">
    📖 Leer artículo completo en {{source}}
  </a>
</div>

---
*Este artículo fue agregado automáticamente desde {{source}}.*`

// Placeholders lists every marker a template may contain.
var Placeholders = []string{
	"{{title}}",
	"{{summary}}",
	"{{publishedAt}}",
	"{{category}}",
	"{{source}}",
	"{{originalUrl}}",
	"{{content}}",
	"{{currentDate}}",
}
