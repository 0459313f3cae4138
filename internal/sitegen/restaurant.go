// internal/sitegen/restaurant.go
//
// Restaurant page: warm orange/red palette, services rendered as menu
// cards, and a Google Maps link when an address is on file.
package sitegen

const restaurantTmpl = `<!DOCTYPE html>
<html lang="en">
{{template "head" .}}
<body class="bg-gray-50">
  <!-- Hero Section -->
  <section class="bg-gradient-to-r from-orange-500 to-red-600 text-white py-20 px-4">
    <div class="max-w-6xl mx-auto text-center">
      <h1 class="text-5xl md:text-6xl font-bold mb-4">{{.Data.BusinessName}}</h1>
      <p class="text-xl md:text-2xl mb-8">Delicious food, great atmosphere</p>
      <a href="tel:{{.Data.Phone}}" class="inline-block bg-white text-orange-600 px-8 py-4 rounded-lg text-lg font-semibold hover:bg-gray-100 transition-colors shadow-lg">
        Call Now: {{.Data.Phone}}
      </a>
    </div>
  </section>

  <!-- About Section -->
  <section class="py-16 px-4 bg-white">
    <div class="max-w-4xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-8 text-gray-900">About Us</h2>
      <p class="text-lg text-gray-700 leading-relaxed text-center">{{.Data.AboutUs}}</p>
    </div>
  </section>

  <!-- Menu Section -->
  <section class="py-16 px-4 bg-gray-50">
    <div class="max-w-6xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-12 text-gray-900">Our Menu</h2>
      <div class="grid md:grid-cols-3 gap-8">
        {{range .Data.Services}}
        <div class="bg-white rounded-lg shadow-md p-6 hover:shadow-xl transition-shadow">
          <div class="w-full h-48 bg-gradient-to-br from-orange-200 to-red-200 rounded-lg mb-4"></div>
          <h3 class="text-xl font-semibold mb-2 text-gray-900">{{.}}</h3>
          <p class="text-gray-600">Delicious and freshly prepared</p>
        </div>
        {{end}}
      </div>
    </div>
  </section>

  <!-- Location Section -->
  {{if .Data.Address}}
  <section class="py-16 px-4 bg-white">
    <div class="max-w-4xl mx-auto text-center">
      <h2 class="text-4xl font-bold mb-8 text-gray-900">Visit Us</h2>
      <p class="text-xl text-gray-700 mb-4">{{.Data.Address}}</p>
      <a href="{{.MapsURL}}" target="_blank" class="inline-block text-orange-600 hover:text-orange-700 font-semibold">
        Get Directions &rarr;
      </a>
    </div>
  </section>
  {{end}}

  {{template "hoursSection" .}}

  <!-- Contact Form Section -->
  <section class="py-16 px-4 bg-gray-50">
    <div class="max-w-2xl mx-auto">
      <h2 class="text-4xl font-bold text-center mb-8 text-gray-900">Get in Touch</h2>
      <form id="contactForm" class="bg-white rounded-lg shadow-md p-8">
        <div class="mb-6">
          <label for="name" class="block text-gray-700 font-semibold mb-2">Name *</label>
          <input type="text" id="name" name="name" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-orange-500 focus:border-transparent" placeholder="Your name">
        </div>
        <div class="mb-6">
          <label for="email" class="block text-gray-700 font-semibold mb-2">Email *</label>
          <input type="email" id="email" name="email" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-orange-500 focus:border-transparent" placeholder="your@email.com">
        </div>
        <div class="mb-6">
          <label for="phone" class="block text-gray-700 font-semibold mb-2">Phone *</label>
          <input type="tel" id="phone" name="phone" required class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-orange-500 focus:border-transparent" placeholder="Your phone number">
        </div>
        <div class="mb-6">
          <label for="message" class="block text-gray-700 font-semibold mb-2">Message *</label>
          <textarea id="message" name="message" required rows="5" class="w-full px-4 py-3 border border-gray-300 rounded-lg focus:ring-2 focus:ring-orange-500 focus:border-transparent" placeholder="Your message"></textarea>
        </div>
        <button type="submit" class="w-full bg-orange-600 text-white px-8 py-4 rounded-lg text-lg font-semibold hover:bg-orange-700 transition-colors">
          Send Message
        </button>
        <div id="formMessage" class="mt-4 text-center hidden"></div>
      </form>
    </div>
  </section>

  {{template "contactInfo" .}}
  {{template "footer" .}}
  {{template "contactScript" .}}
</body>
</html>`
