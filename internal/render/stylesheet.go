package render

// DefaultStylesheet is the shared preview stylesheet embedded in every
// compiled document.
const DefaultStylesheet = `*,*::before,*::after{box-sizing:border-box}
body.pb-preview{margin:0;font-family:var(--font-body, system-ui, -apple-system, "Segoe UI", sans-serif);color:var(--color-text, #111827);background:var(--color-background, #ffffff);line-height:1.6}
.pb-page{display:flex;flex-direction:column}
.pb-block{position:relative;padding:64px 24px;overflow:hidden}
.pb-bg-image{position:absolute;inset:0;background-size:cover;background-position:center;pointer-events:none}
.pb-inner{position:relative;z-index:1;max-width:1120px;margin:0 auto}
.pb-title{margin:0 0 12px;font-family:var(--font-heading, inherit);line-height:1.2}
.pb-hero .pb-title{font-size:3rem}
.pb-subtitle{margin:0 0 24px;color:var(--color-muted, #4b5563);font-size:1.15rem}
.pb-align-left{text-align:left}
.pb-align-center{text-align:center}
.pb-align-right{text-align:right}
.pb-layout-inline{display:flex;align-items:center;justify-content:space-between;gap:24px}
.pb-layout-inline.pb-align-center{justify-content:center}
.pb-layout-below .pb-actions{margin-top:24px}
.pb-button{display:inline-block;padding:12px 28px;border-radius:8px;border:0;background:var(--color-primary, #2563eb);color:var(--color-on-primary, #ffffff);font-weight:600;text-decoration:none;cursor:pointer}
.pb-section-header{text-align:center;margin-bottom:40px}
.pb-grid,.pb-columns{display:grid;gap:24px}
.pb-card{padding:24px;border:1px solid #e5e7eb;border-radius:12px;background:#ffffff}
.pb-card-image{width:100%;border-radius:8px;margin-bottom:16px}
.pb-testimonials{display:grid;gap:24px;grid-template-columns:repeat(auto-fit, minmax(260px, 1fr))}
.pb-testimonial{margin:0;padding:24px;border-radius:12px;background:#f9fafb}
.pb-testimonial blockquote{margin:0 0 16px;font-style:italic}
.pb-avatar{width:40px;height:40px;border-radius:50%;vertical-align:middle;margin-right:8px}
.pb-author{font-weight:600}
.pb-role{display:block;color:var(--color-muted, #4b5563);font-size:.9rem}
.pb-faq-item{border-bottom:1px solid #e5e7eb;padding:16px 0}
.pb-faq-item summary{cursor:pointer;font-weight:600}
.pb-stats{display:grid;gap:24px;grid-template-columns:repeat(auto-fit, minmax(160px, 1fr));margin:0;text-align:center}
.pb-stat-value{font-size:2.5rem;font-weight:700;color:var(--color-primary, #2563eb)}
.pb-stat-label{margin:0;color:var(--color-muted, #4b5563)}
.pb-video{position:relative;padding-top:56.25%}
.pb-video iframe,.pb-video video{position:absolute;inset:0;width:100%;height:100%;border:0}
.pb-figure{margin:0 auto;text-align:center}
.pb-figure img{max-width:100%;height:auto}
.pb-placeholder{padding:48px;border:2px dashed #d1d5db;border-radius:12px;color:#9ca3af;text-align:center}
.pb-form{display:grid;gap:16px;max-width:560px;margin:0 auto}
.pb-field{display:grid;gap:6px}
.pb-field input,.pb-field textarea{padding:10px 12px;border:1px solid #d1d5db;border-radius:8px;font:inherit}
.pb-spacer,.pb-divider{margin:0 auto}
.pb-spacer{padding:0}
.pb-bp-small .pb-block{padding:40px 16px}
.pb-bp-small .pb-hero .pb-title{font-size:2rem}
.pb-bp-small .pb-layout-inline{flex-direction:column}
.pb-bp-medium .pb-hero .pb-title{font-size:2.5rem}`
