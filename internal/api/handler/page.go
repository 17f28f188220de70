package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the single page UI.
type PageHandler struct{}

// NewPageHandler creates a new page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Page serves the caption generator page.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes HTML response).
func (h *PageHandler) Page(c *gin.Context) {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>capgen</title>
    <style>
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: linear-gradient(135deg, #4a90d9 0%, #7b5ea7 100%);
            min-height: 100vh;
            padding: 2rem;
        }
        .container {
            max-width: 640px;
            margin: 0 auto;
        }
        .card {
            background: white;
            border-radius: 16px;
            padding: 2rem;
            box-shadow: 0 10px 40px rgba(0,0,0,0.2);
            margin-bottom: 1.5rem;
        }
        h1 {
            color: #333;
            margin-bottom: 0.5rem;
            font-size: 1.8rem;
        }
        h2 {
            color: #333;
            margin-bottom: 1rem;
            font-size: 1.2rem;
        }
        .subtitle {
            color: #666;
            margin-bottom: 1rem;
        }
        textarea {
            width: 100%;
            padding: 0.75rem;
            border: 2px solid #e0e0e0;
            border-radius: 8px;
            font-size: 1rem;
            font-family: inherit;
            resize: vertical;
            margin-bottom: 1rem;
        }
        textarea:focus, input:focus {
            outline: none;
            border-color: #4a90d9;
        }
        input[type="file"] {
            width: 100%;
            padding: 0.75rem;
            border: 2px dashed #e0e0e0;
            border-radius: 8px;
            margin-bottom: 1rem;
        }
        button.generate {
            width: 100%;
            padding: 1rem;
            background: linear-gradient(135deg, #4a90d9 0%, #7b5ea7 100%);
            color: white;
            border: none;
            border-radius: 8px;
            font-size: 1.1rem;
            font-weight: 600;
            cursor: pointer;
        }
        button.generate:disabled {
            opacity: 0.6;
            cursor: not-allowed;
        }
        .status {
            padding: 1rem;
            border-radius: 8px;
            display: none;
        }
        .status.error {
            background: #f8d7da;
            color: #721c24;
            display: block;
        }
        .results {
            margin-top: 1rem;
        }
        .caption {
            display: flex;
            align-items: flex-start;
            gap: 0.75rem;
            padding: 0.75rem 0;
            border-bottom: 1px solid #e0e0e0;
        }
        .caption:last-child {
            border-bottom: none;
        }
        .variant {
            flex: 0 0 70px;
            padding: 0.25rem 0.5rem;
            background: #f0f4ff;
            color: #4a5a8a;
            border-radius: 6px;
            font-size: 0.8rem;
            font-weight: 600;
            text-align: center;
            text-transform: uppercase;
        }
        .caption p {
            flex: 1;
            color: #333;
        }
        button.copy {
            flex: 0 0 auto;
            padding: 0.4rem 0.9rem;
            background: #f8f9fa;
            color: #333;
            border: 1px solid #e0e0e0;
            border-radius: 6px;
            cursor: pointer;
        }
        button.copy:hover {
            background: #e9ecef;
        }
        .spinner {
            display: inline-block;
            width: 16px;
            height: 16px;
            border: 2px solid #ffffff;
            border-radius: 50%;
            border-top-color: transparent;
            animation: spin 1s linear infinite;
            margin-right: 8px;
        }
        @keyframes spin {
            to { transform: rotate(360deg); }
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <h1>capgen</h1>
            <p class="subtitle">Three caption variants for your text or image</p>
            <div id="notice" class="status"></div>
        </div>

        <div class="card">
            <h2>From text</h2>
            <textarea id="textInput" rows="4" placeholder="Describe what you want captioned..."></textarea>
            <button id="textBtn" class="generate" disabled>Generate captions</button>
            <div id="textResults" class="results"></div>
        </div>

        <div class="card">
            <h2>From image</h2>
            <input type="file" id="imageInput" accept="image/*">
            <button id="imageBtn" class="generate" disabled>Generate captions</button>
            <div id="imageResults" class="results"></div>
        </div>
    </div>

    <script>
        const textInput = document.getElementById('textInput');
        const textBtn = document.getElementById('textBtn');
        const textResults = document.getElementById('textResults');
        const imageInput = document.getElementById('imageInput');
        const imageBtn = document.getElementById('imageBtn');
        const imageResults = document.getElementById('imageResults');
        const notice = document.getElementById('notice');

        let generating = false;

        function updateButtons() {
            textBtn.disabled = generating || !textInput.value.trim();
            imageBtn.disabled = generating || !imageInput.files.length;
        }

        function setGenerating(on, btn) {
            generating = on;
            if (on && btn) {
                btn.innerHTML = '<span class="spinner"></span>Generating...';
            }
            if (!on) {
                textBtn.textContent = 'Generate captions';
                imageBtn.textContent = 'Generate captions';
            }
            updateButtons();
        }

        function showError(message) {
            notice.className = 'status error';
            notice.textContent = message;
        }

        function clearNotice() {
            notice.className = 'status';
            notice.textContent = '';
        }

        function renderBatch(container, captions) {
            container.innerHTML = '';
            captions.forEach(function (caption) {
                const row = document.createElement('div');
                row.className = 'caption';

                const label = document.createElement('span');
                label.className = 'variant';
                label.textContent = caption.variant;

                const text = document.createElement('p');
                text.textContent = caption.text;

                const copyBtn = document.createElement('button');
                copyBtn.className = 'copy';
                copyBtn.textContent = 'Copy';
                copyBtn.addEventListener('click', function () {
                    copyCaption(caption, copyBtn);
                });

                row.appendChild(label);
                row.appendChild(text);
                row.appendChild(copyBtn);
                container.appendChild(row);
            });
        }

        async function copyCaption(caption, btn) {
            try {
                const response = await fetch('/api/v1/captions/' + caption.id + '/copy', { method: 'POST' });
                const data = await response.json();
                if (!response.ok) {
                    showError(data.error || 'Copy failed');
                    return;
                }
                await navigator.clipboard.writeText(data.caption.text);

                let windowMs = Date.parse(data.copied_until) - Date.now();
                if (!(windowMs > 0)) {
                    windowMs = 2000;
                }

                document.querySelectorAll('button.copy').forEach(function (other) {
                    other.textContent = 'Copy';
                });
                btn.textContent = 'Copied!';
                setTimeout(function () {
                    if (btn.textContent === 'Copied!') {
                        btn.textContent = 'Copy';
                    }
                }, windowMs);
            } catch (err) {
                showError('Copy failed: ' + err.message);
            }
        }

        async function generate(url, options, container, btn) {
            clearNotice();
            setGenerating(true, btn);
            container.innerHTML = '';
            try {
                const response = await fetch(url, options);
                const data = await response.json();
                if (!response.ok) {
                    showError(data.error || 'Generation failed');
                    return;
                }
                renderBatch(container, data.captions);
            } catch (err) {
                showError('Network error: ' + err.message);
            } finally {
                setGenerating(false, btn);
            }
        }

        textBtn.addEventListener('click', function () {
            generate('/api/v1/captions/text', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ text: textInput.value })
            }, textResults, textBtn);
        });

        imageBtn.addEventListener('click', function () {
            const form = new FormData();
            form.append('image', imageInput.files[0]);
            generate('/api/v1/captions/image', { method: 'POST', body: form }, imageResults, imageBtn);
        });

        function clearBatch(mode, container) {
            if (container.innerHTML === '') {
                return;
            }
            container.innerHTML = '';
            fetch('/api/v1/session/clear', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ mode: mode })
            });
        }

        textInput.addEventListener('input', function () {
            clearBatch('text', textResults);
            updateButtons();
        });
        imageInput.addEventListener('change', function () {
            clearBatch('image', imageResults);
            updateButtons();
        });

        // Browsers can restore input values on back navigation without
        // firing events.
        updateButtons();

        (async function restoreSession() {
            try {
                const response = await fetch('/api/v1/session');
                if (!response.ok) {
                    return;
                }
                const snapshot = await response.json();
                if (snapshot.text && snapshot.text.length) {
                    renderBatch(textResults, snapshot.text);
                }
                if (snapshot.image && snapshot.image.length) {
                    renderBatch(imageResults, snapshot.image);
                }
                if (snapshot.generating) {
                    setGenerating(true, null);
                }
            } catch (err) {
                // The page still works without a restored session.
            }
        })();
    </script>
</body>
</html>`
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}
