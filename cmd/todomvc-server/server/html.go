package server

// StorageKey is the local storage key the app persists its todos under.
const StorageKey = "todos-vanillajs"

// HTMLPage is the TodoMVC application served at the root.
// It follows the TodoMVC markup so the page object works against it and
// against other TodoMVC ports alike: hash routing for the filters, edit in
// place on double click, and persistence in local storage.
const HTMLPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <title>TodoMVC</title>
    <style>
        body {
            font: 14px 'Helvetica Neue', Helvetica, Arial, sans-serif;
            background: #f5f5f5;
            color: #111;
            margin: 0 auto;
            max-width: 550px;
            min-width: 230px;
        }
        button { margin: 0; padding: 0; border: 0; background: none; font-size: 100%; cursor: pointer; }
        .todoapp { background: #fff; margin: 130px 0 40px 0; position: relative; box-shadow: 0 2px 4px rgba(0,0,0,0.2); }
        .todoapp h1 { position: absolute; top: -100px; width: 100%; font-size: 80px; font-weight: 200; text-align: center; color: #b83f45; }
        .new-todo, .edit { position: relative; margin: 0; width: 100%; font-size: 24px; line-height: 1.4em; padding: 6px; box-sizing: border-box; }
        .new-todo { padding: 16px 16px 16px 60px; border: none; background: rgba(0,0,0,0.003); }
        .main { position: relative; border-top: 1px solid #e6e6e6; }
        .toggle-all { width: 1px; height: 1px; border: none; opacity: 0; position: absolute; right: 100%; bottom: 100%; }
        .toggle-all + label { display: block; position: absolute; top: -52px; left: 0; width: 45px; height: 52px; font-size: 0; cursor: pointer; }
        .toggle-all + label:before { content: '\276F'; display: inline-block; font-size: 22px; color: #949494; padding: 10px 27px 10px 27px; transform: rotate(90deg); }
        .toggle-all:checked + label:before { color: #484848; }
        .todo-list { margin: 0; padding: 0; list-style: none; }
        .todo-list li { position: relative; font-size: 24px; border-bottom: 1px solid #ededed; }
        .todo-list li .view { display: flex; align-items: center; }
        .todo-list li .toggle { width: 40px; height: 24px; margin: 0 6px; }
        .todo-list li label { flex: 1; word-break: break-all; padding: 15px 15px 15px 0; line-height: 1.2; }
        .todo-list li.completed label { color: #949494; text-decoration: line-through; }
        .todo-list li .destroy { display: none; width: 40px; height: 40px; margin-right: 10px; font-size: 30px; color: #949494; }
        .todo-list li .destroy:after { content: '\00D7'; }
        .todo-list li:hover .destroy { display: block; }
        .todo-list li .edit { display: none; }
        .todo-list li.editing .edit { display: block; width: calc(100% - 43px); margin: 0 0 0 43px; }
        .todo-list li.editing .view { display: none; }
        .footer { padding: 10px 15px; height: 20px; text-align: center; font-size: 15px; border-top: 1px solid #e6e6e6; }
        .todo-count { float: left; text-align: left; }
        .filters { margin: 0; padding: 0; list-style: none; position: absolute; right: 0; left: 0; }
        .filters li { display: inline; }
        .filters li a { color: inherit; margin: 3px; padding: 3px 7px; text-decoration: none; border: 1px solid transparent; border-radius: 3px; }
        .filters li a.selected { border-color: #ce4646; }
        .clear-completed { float: right; position: relative; line-height: 19px; text-decoration: none; }
    </style>
</head>
<body>
    <section class="todoapp">
        <header class="header">
            <h1>todos</h1>
            <input class="new-todo" placeholder="What needs to be done?" autofocus>
        </header>
        <section class="main">
            <input id="toggle-all" class="toggle-all" type="checkbox">
            <label for="toggle-all">Mark all as complete</label>
            <ul class="todo-list"></ul>
        </section>
        <footer class="footer">
            <span class="todo-count"></span>
            <ul class="filters">
                <li><a href="#/" class="selected">All</a></li>
                <li><a href="#/active">Active</a></li>
                <li><a href="#/completed">Completed</a></li>
            </ul>
            <button class="clear-completed">Clear completed</button>
        </footer>
    </section>

    <script>
    (function () {
        'use strict';

        var STORAGE_KEY = 'todos-vanillajs';

        function load() {
            try {
                var stored = JSON.parse(window.localStorage.getItem(STORAGE_KEY));
                return Array.isArray(stored) ? stored : [];
            } catch (e) {
                return [];
            }
        }

        var todos = load();

        var newTodo = document.querySelector('.new-todo');
        var main = document.querySelector('.main');
        var toggleAll = document.querySelector('.toggle-all');
        var list = document.querySelector('.todo-list');
        var footer = document.querySelector('.footer');
        var count = document.querySelector('.todo-count');
        var filterLinks = document.querySelectorAll('.filters a');
        var clearCompleted = document.querySelector('.clear-completed');

        function save() {
            window.localStorage.setItem(STORAGE_KEY, JSON.stringify(todos));
        }

        function nextId() {
            return todos.reduce(function (max, t) { return Math.max(max, t.id); }, 0) + 1;
        }

        function route() {
            switch (window.location.hash) {
            case '#/active':
                return 'active';
            case '#/completed':
                return 'completed';
            default:
                return 'all';
            }
        }

        function routeHash(r) {
            return r === 'all' ? '#/' : '#/' + r;
        }

        function shown(todo, r) {
            if (r === 'active') {
                return !todo.completed;
            }
            if (r === 'completed') {
                return todo.completed;
            }
            return true;
        }

        function find(id) {
            for (var i = 0; i < todos.length; i++) {
                if (todos[i].id === id) {
                    return i;
                }
            }
            return -1;
        }

        function itemId(el) {
            var li = el.closest('li');
            return li === null ? -1 : Number(li.dataset.id);
        }

        function renderItem(todo) {
            var li = document.createElement('li');
            li.dataset.id = String(todo.id);
            if (todo.completed) {
                li.className = 'completed';
            }

            var view = document.createElement('div');
            view.className = 'view';

            var toggle = document.createElement('input');
            toggle.className = 'toggle';
            toggle.type = 'checkbox';
            toggle.checked = todo.completed;

            var label = document.createElement('label');
            label.textContent = todo.title;

            var destroy = document.createElement('button');
            destroy.className = 'destroy';

            view.appendChild(toggle);
            view.appendChild(label);
            view.appendChild(destroy);

            var edit = document.createElement('input');
            edit.className = 'edit';
            edit.value = todo.title;

            li.appendChild(view);
            li.appendChild(edit);
            return li;
        }

        function render() {
            var r = route();
            var active = todos.filter(function (t) { return !t.completed; }).length;
            var completed = todos.length - active;

            list.textContent = '';
            todos.forEach(function (todo) {
                if (shown(todo, r)) {
                    list.appendChild(renderItem(todo));
                }
            });

            main.style.display = todos.length > 0 ? '' : 'none';
            footer.style.display = todos.length > 0 ? '' : 'none';
            toggleAll.checked = todos.length > 0 && active === 0;

            count.textContent = '';
            var strong = document.createElement('strong');
            strong.textContent = String(active);
            count.appendChild(strong);
            count.appendChild(document.createTextNode(active === 1 ? ' item left' : ' items left'));

            clearCompleted.style.display = completed > 0 ? '' : 'none';

            Array.prototype.forEach.call(filterLinks, function (a) {
                a.classList.toggle('selected', a.getAttribute('href') === routeHash(r));
            });
        }

        function commit(li) {
            if (!li.classList.contains('editing')) {
                return;
            }
            li.classList.remove('editing');
            var i = find(Number(li.dataset.id));
            if (i < 0) {
                render();
                return;
            }
            var edit = li.querySelector('.edit');
            var title = edit.value.trim();
            if (li.dataset.canceled === 'true') {
                render();
                return;
            }
            if (title === '') {
                todos.splice(i, 1);
            } else {
                todos[i].title = title;
            }
            save();
            render();
        }

        newTodo.addEventListener('keydown', function (e) {
            if (e.key !== 'Enter') {
                return;
            }
            var title = newTodo.value.trim();
            if (title === '') {
                return;
            }
            todos.push({ id: nextId(), title: title, completed: false });
            newTodo.value = '';
            save();
            render();
        });

        toggleAll.addEventListener('change', function () {
            var checked = toggleAll.checked;
            todos.forEach(function (t) { t.completed = checked; });
            save();
            render();
        });

        clearCompleted.addEventListener('click', function () {
            todos = todos.filter(function (t) { return !t.completed; });
            save();
            render();
        });

        list.addEventListener('change', function (e) {
            if (!e.target.classList.contains('toggle')) {
                return;
            }
            var i = find(itemId(e.target));
            if (i < 0) {
                return;
            }
            todos[i].completed = e.target.checked;
            save();
            render();
        });

        list.addEventListener('click', function (e) {
            if (!e.target.classList.contains('destroy')) {
                return;
            }
            var i = find(itemId(e.target));
            if (i < 0) {
                return;
            }
            todos.splice(i, 1);
            save();
            render();
        });

        list.addEventListener('dblclick', function (e) {
            if (e.target.tagName !== 'LABEL') {
                return;
            }
            var li = e.target.closest('li');
            li.classList.add('editing');
            var edit = li.querySelector('.edit');
            edit.focus();
            edit.setSelectionRange(edit.value.length, edit.value.length);
        });

        list.addEventListener('keydown', function (e) {
            if (!e.target.classList.contains('edit')) {
                return;
            }
            if (e.key === 'Enter') {
                e.target.blur();
            } else if (e.key === 'Escape') {
                e.target.closest('li').dataset.canceled = 'true';
                e.target.blur();
            }
        });

        list.addEventListener('blur', function (e) {
            if (e.target.classList.contains('edit')) {
                commit(e.target.closest('li'));
            }
        }, true);

        window.addEventListener('hashchange', render);

        render();
    })();
    </script>
</body>
</html>
`
