package devserve

// Client-side script injected into HTML responses. Self-contained: no
// external JS, nothing loaded from the served site.
var clientScript = []byte(`
<script id="` + Marker + `">
(() => {
  const url = new URL(location.href)

  // Reload the page whenever the server reports a change on disk.
  if (url.searchParams.get("noreload") !== "1") {
    const connect = () => {
      const es = new EventSource("` + LiveReloadPath + `")
      es.addEventListener("reload", () => location.reload())
      es.onerror = () => {
        try { es.close() } catch {}
        setTimeout(connect, 500)
      }
    }
    connect()
  }

  // Inspect mode: click any element to copy a CSS selector for it.
  if (url.searchParams.get("inspect") === "1") {
    const cssEscape = (s) => (window.CSS && CSS.escape) ? CSS.escape(s) : String(s).replace(/[^a-zA-Z0-9_-]/g, (m) => "\\" + m)
    const getSelector = (el) => {
      if (!el || el.nodeType !== 1) return ""
      if (el.id) return "#" + cssEscape(el.id)
      const parts = []
      let cur = el
      while (cur && cur.nodeType === 1 && cur !== document.body) {
        let part = cur.tagName.toLowerCase()
        const classes = cur.classList ? Array.from(cur.classList).filter(Boolean) : []
        if (classes.length) part += "." + classes.slice(0, 2).map(cssEscape).join(".")
        const parent = cur.parentElement
        if (parent) {
          const sameTag = Array.from(parent.children).filter((c) => c.tagName === cur.tagName)
          if (sameTag.length > 1) part += ":nth-of-type(" + (sameTag.indexOf(cur) + 1) + ")"
        }
        parts.unshift(part)
        cur = cur.parentElement
      }
      return "body > " + parts.join(" > ")
    }

    const style = document.createElement("style")
    style.textContent = [
      "#__devserve_tip { position: fixed; left: 12px; bottom: 12px; z-index: 2147483647;",
      "  font: 12px/1.2 ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, monospace;",
      "  color: #0b0b0b; background: rgba(180, 249, 192, 0.92); border: 1px solid rgba(0,0,0,.25);",
      "  padding: 10px 12px; border-radius: 10px; max-width: 70vw; box-shadow: 0 8px 30px rgba(0,0,0,.35); }",
      "#__devserve_tip code { user-select: all; }",
      "#__devserve_hl { position: fixed; z-index: 2147483646; pointer-events: none;",
      "  outline: 2px solid rgba(180, 249, 192, 0.95); box-shadow: 0 0 0 1px rgba(0,0,0,.35) inset; }"
    ].join("\n")
    document.head.appendChild(style)

    const tip = document.createElement("div")
    tip.id = "__devserve_tip"
    tip.innerHTML = '<div style="margin-bottom:6px;"><b>Inspect mode</b>: click anything to copy its selector</div><code>(none)</code>'
    document.body.appendChild(tip)

    const hl = document.createElement("div")
    hl.id = "__devserve_hl"
    document.body.appendChild(hl)

    const updateHL = (el) => {
      if (!el || el === document.documentElement || el === document.body) {
        hl.style.display = "none"
        return
      }
      const r = el.getBoundingClientRect()
      hl.style.display = "block"
      hl.style.left = r.left + "px"
      hl.style.top = r.top + "px"
      hl.style.width = r.width + "px"
      hl.style.height = r.height + "px"
    }

    let lastEl = null
    window.addEventListener("mousemove", (e) => {
      const el = document.elementFromPoint(e.clientX, e.clientY)
      if (el && el !== lastEl) {
        lastEl = el
        updateHL(el)
      }
    }, true)

    window.addEventListener("click", async (e) => {
      e.preventDefault()
      e.stopPropagation()
      const el = document.elementFromPoint(e.clientX, e.clientY)
      const sel = getSelector(el)
      tip.querySelector("code").textContent = sel || "(none)"
      try { await navigator.clipboard.writeText(sel) } catch {}
    }, true)
  }
})()
</script>
`)
