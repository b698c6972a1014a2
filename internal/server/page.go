package server

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>ntwk</title>
<style>
  body { font-family: system-ui, sans-serif; margin: 20px; display: flex; flex-direction: column; align-items: center; }
  #toolbar { padding: 10px; display: flex; gap: 8px; }
  #toolbar button.active { font-weight: bold; }
  #canvas { cursor: crosshair; line-height: 0; }
  #status { font-size: 12px; color: #666; padding: 6px; }
</style>
</head>
<body>
<div id="toolbar">
  <button data-mode="node">Add Node</button>
  <button data-mode="edge">Add Edge</button>
  <button data-mode="curve">Add Curve</button>
  <button data-mode="remove-node">Remove Node</button>
  <button data-mode="remove-edge">Remove Edge</button>
  <button id="clear">Clear</button>
  <a href="/api/script">Save script</a>
</div>
<div id="canvas"></div>
<div id="status"></div>
<script>
const canvas = document.getElementById('canvas');
const status = document.getElementById('status');
let pending = false;

async function draw(cursor) {
  if (pending) return;
  pending = true;
  const q = cursor ? '?x=' + cursor.x + '&y=' + cursor.y : '';
  const res = await fetch('/canvas.svg' + q);
  canvas.innerHTML = await res.text();
  pending = false;
}

async function refresh() {
  const st = await (await fetch('/api/state')).json();
  status.textContent = st.mode + ' | ' + st.node_count + ' nodes, ' + st.edge_count + ' edges';
  document.querySelectorAll('[data-mode]').forEach(b => b.classList.toggle('active', b.dataset.mode === st.mode));
  await draw();
}

function toCanvas(ev) {
  const svg = canvas.querySelector('svg');
  const box = svg.getBoundingClientRect();
  const vb = svg.viewBox.baseVal;
  return {
    x: (ev.clientX - box.left) * vb.width / box.width,
    y: (ev.clientY - box.top) * vb.height / box.height,
  };
}

async function send(method, path, body) {
  const res = await fetch(path, {
    method: method,
    headers: { 'Content-Type': 'application/json' },
    body: body ? JSON.stringify(body) : undefined,
  });
  if (!res.ok) status.textContent = (await res.json()).error;
}

canvas.addEventListener('mousedown', async ev => { await send('POST', '/api/click', toCanvas(ev)); await refresh(); });
canvas.addEventListener('mousemove', ev => draw(toCanvas(ev)));
document.querySelectorAll('[data-mode]').forEach(b =>
  b.addEventListener('click', async () => { await send('PUT', '/api/mode', { mode: b.dataset.mode }); await refresh(); }));
document.getElementById('clear').addEventListener('click', async () => { await send('POST', '/api/clear'); await refresh(); });

refresh();
</script>
</body>
</html>
`
